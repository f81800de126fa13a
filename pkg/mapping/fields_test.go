package mapping

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFieldsPreserveInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("zeta", 1)
	f.Set("alpha", 2)
	f.Set("mid", 3)

	if !reflect.DeepEqual(f.Keys(), []string{"zeta", "alpha", "mid"}) {
		t.Fatalf("expected insertion order, got %v", f.Keys())
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":1,"alpha":2,"mid":3}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestFieldsSetOverwritesInPlace(t *testing.T) {
	f := NewFields()
	f.Set("a", 1)
	f.Set("b", 2)
	f.Set("a", 3)

	if !reflect.DeepEqual(f.Keys(), []string{"a", "b"}) {
		t.Fatalf("expected overwrite to keep position, got %v", f.Keys())
	}
	if v, _ := f.Get("a"); v != 3 {
		t.Fatalf("expected overwritten value, got %v", v)
	}
}

func TestFieldsDelete(t *testing.T) {
	f := NewFields()
	f.Set("a", 1)
	f.Set("b", 2)
	if !f.Delete("a") {
		t.Fatalf("expected delete to report success")
	}
	if f.Delete("a") {
		t.Fatalf("expected second delete to report absence")
	}
	if !reflect.DeepEqual(f.Keys(), []string{"b"}) {
		t.Fatalf("expected only b to remain, got %v", f.Keys())
	}
}
