package loader

import (
	"reflect"
	"testing"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name string
		dst  map[string]any
		src  map[string]any
		want map[string]any
	}{
		{
			name: "nil dst",
			dst:  nil,
			src:  map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "nil src",
			dst:  map[string]any{"a": 1},
			src:  nil,
			want: map[string]any{"a": 1},
		},
		{
			name: "nested maps merge",
			dst:  map[string]any{"ui": map[string]any{"filler": "~", "welcome": "x"}},
			src:  map[string]any{"ui": map[string]any{"filler": "."}},
			want: map[string]any{"ui": map[string]any{"filler": ".", "welcome": "x"}},
		},
		{
			name: "scalar replaces map",
			dst:  map[string]any{"ui": map[string]any{"filler": "~"}},
			src:  map[string]any{"ui": "off"},
			want: map[string]any{"ui": "off"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeepMerge(tt.dst, tt.src); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeepMerge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"a": map[string]any{"b": 1},
		"l": []any{map[string]any{"c": 2}},
	}
	dst := Clone(src)
	if !reflect.DeepEqual(src, dst) {
		t.Fatalf("Clone() = %#v, want %#v", dst, src)
	}

	dst["a"].(map[string]any)["b"] = 9
	dst["l"].([]any)[0].(map[string]any)["c"] = 9
	if v, _ := GetByPath(src, "a.b"); v != 1 {
		t.Errorf("source map mutated through clone: a.b = %v", v)
	}
	if src["l"].([]any)[0].(map[string]any)["c"] != 2 {
		t.Error("source slice mutated through clone")
	}

	if Clone(nil) != nil {
		t.Error("Clone(nil) != nil")
	}
}

func TestSetGetByPath(t *testing.T) {
	m := map[string]any{"editor": "flat"}
	SetByPath(m, "editor.tabStop", 4)
	SetByPath(m, "debug", true)

	if v, ok := GetByPath(m, "editor.tabStop"); !ok || v != 4 {
		t.Errorf("editor.tabStop = %v, %v", v, ok)
	}
	if v, ok := GetByPath(m, "debug"); !ok || v != true {
		t.Errorf("debug = %v, %v", v, ok)
	}
	if _, ok := GetByPath(m, "ui.filler"); ok {
		t.Error("GetByPath found missing ui.filler")
	}
	if _, ok := GetByPath(m, "debug.deeper"); ok {
		t.Error("GetByPath descended into a scalar")
	}
}
