package tools

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available tools with grouping and aliasing support.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]*Tool    // name -> tool
	groups  map[string][]string // group name -> tool names
	aliases map[string]string   // alias -> canonical name
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		groups:  make(map[string][]string),
		aliases: make(map[string]string),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name
	r.tools[name] = tool

	if tool.Group != "" {
		r.groups[tool.Group] = append(r.groups[tool.Group], name)
	}
}

// RegisterAlias creates an alias for a tool (e.g. "find_records" ->
// "search_records").
func (r *Registry) RegisterAlias(alias, canonical string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = canonical
}

// Get retrieves a tool by name, resolving aliases.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	return r.tools[name]
}

// Has checks if a tool exists by name.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// AliasTools returns one callable tool per registered alias, cloned from
// its canonical tool so the alias can be served under its own name. Aliases
// whose canonical tool is missing are skipped. Sorted by alias name.
func (r *Registry) AliasTools() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	out := make([]*Tool, 0, len(aliases))
	for _, alias := range aliases {
		canonical := r.tools[r.aliases[alias]]
		if canonical == nil {
			continue
		}
		clone := *canonical
		clone.Name = alias
		clone.Description = fmt.Sprintf("Alias for %s. %s", canonical.Name, canonical.Description)
		out = append(out, &clone)
	}
	return out
}

// Groups returns all group names.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]string, 0, len(r.groups))
	for group := range r.groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// ToolsInGroup returns tool names in a group.
func (r *Registry) ToolsInGroup(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.groups[group]
	if names == nil {
		return nil
	}
	result := make([]string, len(names))
	copy(result, names)
	return result
}
