package sample

import (
	"reflect"
	"testing"
)

func TestSetAndGet(t *testing.T) {
	s := NewSample()
	s.Set("sample_name", "K562_pro")
	s.Set("umi_len", 8)
	s.Set("scale", true)

	if v, ok := s.Get("sample_name"); !ok || v != "K562_pro" {
		t.Errorf("Get(sample_name) = %q, %v", v, ok)
	}
	if v, ok := s.Get("umi_len"); !ok || v != "8" {
		t.Errorf("numbers should normalize to strings, got %q, %v", v, ok)
	}
	if _, ok := s.Get("scale"); ok {
		t.Error("presence markers should not report a string value")
	}
	if !s.Has("scale") {
		t.Error("Has should see presence markers")
	}
}

func TestPresenceIgnoresTruthiness(t *testing.T) {
	s := NewSample()
	s.Set("keep", false)

	// Key existence is what matters for switch-style attributes.
	if !s.Has("keep") {
		t.Error("a false-valued key still counts as present")
	}
}

func TestList(t *testing.T) {
	s := NewSample()
	s.Set("prealignment_names", []string{"human_rDNA", "rCRSd"})
	s.Set("genome", "hg38")

	list, ok := s.List("prealignment_names")
	if !ok || !reflect.DeepEqual(list, []string{"human_rDNA", "rCRSd"}) {
		t.Errorf("List = %v, %v", list, ok)
	}

	// A scalar attribute lists as a single element.
	list, ok = s.List("genome")
	if !ok || !reflect.DeepEqual(list, []string{"hg38"}) {
		t.Errorf("scalar List = %v, %v", list, ok)
	}

	if _, ok := s.List("absent"); ok {
		t.Error("List of absent key should report false")
	}
}

func TestFromMapNormalization(t *testing.T) {
	s := FromMap(map[string]any{
		"sample_name":        "S1",
		"umi_len":            float64(8),
		"sob":                nil,
		"prealignment_names": []any{"human_rDNA", "rCRSd"},
	})

	if v, _ := s.Get("umi_len"); v != "8" {
		t.Errorf("expected umi_len 8, got %q", v)
	}
	if !s.Has("sob") {
		t.Error("nil values should become presence markers")
	}
	list, _ := s.List("prealignment_names")
	if !reflect.DeepEqual(list, []string{"human_rDNA", "rCRSd"}) {
		t.Errorf("interface list should normalize, got %v", list)
	}
}

func TestMissingRequired(t *testing.T) {
	s := NewSample()
	s.Set("sample_name", "S1")
	s.Set("read_type", "single")

	missing := s.MissingRequired()
	if !reflect.DeepEqual(missing, []string{"genome", "read1"}) {
		t.Errorf("MissingRequired = %v", missing)
	}

	s.Set("genome", "hg38")
	s.Set("read1", "r1.fq.gz")
	if m := s.MissingRequired(); m != nil {
		t.Errorf("expected no missing attributes, got %v", m)
	}
}

func TestEmptyRequiredValueCountsAsMissing(t *testing.T) {
	s := NewSample()
	s.Set("sample_name", "S1")
	s.Set("genome", "")
	s.Set("read1", "r1.fq.gz")
	s.Set("read_type", "single")

	missing := s.MissingRequired()
	if !reflect.DeepEqual(missing, []string{"genome"}) {
		t.Errorf("MissingRequired = %v", missing)
	}
}

func TestToMapCopies(t *testing.T) {
	s := NewSample()
	s.Set("prealignment_names", []string{"a"})

	m := s.ToMap()
	m["prealignment_names"].([]string)[0] = "mutated"

	list, _ := s.List("prealignment_names")
	if list[0] != "a" {
		t.Error("ToMap should return a copy of list values")
	}
}
