package model

import (
	"fmt"
	"reflect"
)

// FrontMatter is the YAML mapping at the top of an article. Keys keep their file order.
type FrontMatter struct {
	keys   []string
	values map[string]any
}

func NewFrontMatter() FrontMatter {
	return FrontMatter{values: make(map[string]any)}
}

func (f FrontMatter) Get(key string) (any, bool) {
	value, ok := f.values[key]
	return value, ok
}

func (f *FrontMatter) Set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f *FrontMatter) Delete(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i:i], f.keys[i+1:]...)
			break
		}
	}
}

func (f FrontMatter) Keys() []string {
	return append([]string(nil), f.keys...)
}

func (f FrontMatter) Len() int {
	return len(f.keys)
}

// Bool reports whether the value is set and truthy: non-empty strings and collections,
// non-zero numbers and true.
func (f FrontMatter) Bool(key string) bool {
	value, ok := f.values[key]
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) != 0
	case map[string]any:
		return len(v) != 0
	}
	return true
}

// Text returns a scalar value as text. Hashes made of digits only decode as numbers.
func (f FrontMatter) Text(key string) (string, bool) {
	value, ok := f.values[key]
	if !ok || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case []any, map[string]any:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

func (f FrontMatter) Clone() FrontMatter {
	clone := NewFrontMatter()
	for _, key := range f.keys {
		clone.Set(key, f.values[key])
	}
	return clone
}

// Equal compares contents and key order.
func (f FrontMatter) Equal(other FrontMatter) bool {
	if !reflect.DeepEqual(f.keys, other.keys) && (len(f.keys) != 0 || len(other.keys) != 0) {
		return false
	}
	for _, key := range f.keys {
		if !reflect.DeepEqual(f.values[key], other.values[key]) {
			return false
		}
	}
	return true
}
