package utils

import (
	"testing"
)

func TestBaseRegistry_BasicOperations(t *testing.T) {
	registry := NewBaseRegistry[string, int]("test")

	if keys := registry.List(); len(keys) != 0 {
		t.Errorf("expected empty registry, got %v", keys)
	}

	if err := registry.Register("b", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Register("a", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value, ok := registry.Get("a"); !ok || value != 1 {
		t.Errorf("expected a=1, got %d (ok=%v)", value, ok)
	}
	if _, ok := registry.Get("c"); ok {
		t.Error("expected c to be missing")
	}

	keys := registry.List()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected sorted keys [a b], got %v", keys)
	}
}

func TestBaseRegistry_Validators(t *testing.T) {
	registry := NewBaseRegistry[string, int]("type")
	registry.SetValidator(ChainValidators(
		NotEmptyKeyValidator[int]("type name"),
		nil,
		NoDuplicateValidator[string, int]("type name"),
	))

	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "valid key", key: "Route"},
		{name: "empty key", key: "", wantErr: "type registry: type name cannot be empty"},
		{name: "duplicate key", key: "Route", wantErr: "type registry: type name 'Route' is already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.key, 1)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %v", tt.wantErr, err)
			}
		})
	}

	if keys := registry.List(); len(keys) != 1 {
		t.Errorf("expected rejected keys to stay out, got %v", keys)
	}
}
