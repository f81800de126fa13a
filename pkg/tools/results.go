package tools

import "fmt"

// TextResult creates a successful result with a single text block.
func TextResult(text string) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// DetailedResult creates a successful text result carrying structured details
// alongside the text body.
func DetailedResult(text string, details map[string]any) *Result {
	res := TextResult(text)
	res.Details = details
	return res
}

// ErrorResult creates an error result.
func ErrorResult(message string) *Result {
	return &Result{Status: ResultError, Error: message}
}

// ErrorResultf creates an error result with formatting.
func ErrorResultf(format string, args ...any) *Result {
	return ErrorResult(fmt.Sprintf(format, args...))
}
