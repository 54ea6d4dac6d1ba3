// Package sample models a single unit of experimental input data together
// with its declared processing attributes, and loads sample tables from
// CSV/TSV or YAML sample sheets.
package sample

import (
	"fmt"
	"sort"
	"strconv"
)

// Required lists the attributes every sample must declare before a
// pipeline command can be built for it.
var Required = []string{"sample_name", "genome", "read1", "read_type"}

// Sample is a mapping from attribute name to value. Values are strings,
// string lists, or bare presence markers; for switch-style attributes the
// mere existence of the key is what matters, not its value.
type Sample struct {
	attrs map[string]any
	keys  []string
}

// NewSample returns an empty sample.
func NewSample() *Sample {
	return &Sample{attrs: make(map[string]any)}
}

// FromMap builds a sample from a generic attribute map, normalizing
// YAML/JSON decoding artifacts (interface lists, numbers, booleans).
// Keys are recorded in sorted order so display output is stable.
func FromMap(m map[string]any) *Sample {
	s := NewSample()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// Set stores an attribute, normalizing the value type. Nil values are
// stored as presence markers.
func (s *Sample) Set(key string, value any) {
	if _, exists := s.attrs[key]; !exists {
		s.keys = append(s.keys, key)
	}
	switch v := value.(type) {
	case nil:
		s.attrs[key] = true
	case string:
		s.attrs[key] = v
	case bool:
		s.attrs[key] = v
	case []string:
		s.attrs[key] = v
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			list = append(list, toString(item))
		}
		s.attrs[key] = list
	case int:
		s.attrs[key] = strconv.Itoa(v)
	case float64:
		s.attrs[key] = formatFloat(v)
	default:
		s.attrs[key] = fmt.Sprintf("%v", v)
	}
}

// Has reports whether the attribute key exists, regardless of its value.
func (s *Sample) Has(key string) bool {
	_, ok := s.attrs[key]
	return ok
}

// Get returns the attribute's string value. Presence markers and lists
// report false: they carry no single string value.
func (s *Sample) Get(key string) (string, bool) {
	v, ok := s.attrs[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// List returns the attribute as a string list. A plain string value is
// returned as a single-element list.
func (s *Sample) List(key string) ([]string, bool) {
	v, ok := s.attrs[key]
	if !ok {
		return nil, false
	}
	switch val := v.(type) {
	case []string:
		return val, true
	case string:
		return []string{val}, true
	}
	return nil, false
}

// Name returns the sample_name attribute, or "" if unset.
func (s *Sample) Name() string {
	v, _ := s.Get("sample_name")
	return v
}

// Genome returns the genome attribute, or "" if unset.
func (s *Sample) Genome() string {
	v, _ := s.Get("genome")
	return v
}

// Keys returns attribute names in their recorded order.
func (s *Sample) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// ToMap returns a copy of the attribute map, for serialization and
// search indexing.
func (s *Sample) ToMap() map[string]any {
	out := make(map[string]any, len(s.attrs))
	for k, v := range s.attrs {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// MissingRequired returns the required attributes this sample lacks,
// in Required order. Empty means the sample is runnable.
func (s *Sample) MissingRequired() []string {
	var missing []string
	for _, key := range Required {
		if v, ok := s.Get(key); !ok || v == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
