package search

import (
	"path/filepath"
	"testing"

	"github.com/zx0223winner/peppro/internal/sample"
)

func setupIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "samples.bleve"))
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func testSamples() []*sample.Sample {
	return []*sample.Sample{
		sample.FromMap(map[string]any{
			"sample_name": "K562_pro_1",
			"genome":      "hg38",
			"read1":       "K562_1_r1.fq.gz",
			"read_type":   "single",
			"protocol":    "PROSEQ",
		}),
		sample.FromMap(map[string]any{
			"sample_name": "H9_gro_1",
			"genome":      "hg38",
			"read1":       "H9_1_r1.fq.gz",
			"read_type":   "paired",
			"read2":       "H9_1_r2.fq.gz",
			"protocol":    "GROSEQ",
		}),
		sample.FromMap(map[string]any{
			"sample_name": "mouse_pro_1",
			"genome":      "mm10",
			"read1":       "mouse_r1.fq.gz",
			"read_type":   "single",
		}),
	}
}

func TestIndexAndCount(t *testing.T) {
	ix := setupIndex(t)

	if err := ix.IndexSamples(testSamples(), 2); err != nil {
		t.Fatalf("IndexSamples failed: %v", err)
	}

	count, err := ix.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 indexed samples, got %d", count)
	}
}

func TestSearchByGenome(t *testing.T) {
	ix := setupIndex(t)
	if err := ix.IndexSamples(testSamples(), 0); err != nil {
		t.Fatalf("IndexSamples failed: %v", err)
	}

	results, err := ix.Search("genome:mm10", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].SampleName != "mouse_pro_1" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchByProtocol(t *testing.T) {
	ix := setupIndex(t)
	if err := ix.IndexSamples(testSamples(), 0); err != nil {
		t.Fatalf("IndexSamples failed: %v", err)
	}

	results, err := ix.Search("GROSEQ", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].SampleName != "H9_gro_1" {
		t.Errorf("unexpected results: %+v", results)
	}
	if results[0].Fields["genome"] != "hg38" {
		t.Errorf("expected stored genome field, got %v", results[0].Fields)
	}
}

func TestReindexReplacesByName(t *testing.T) {
	ix := setupIndex(t)
	samples := testSamples()
	if err := ix.IndexSamples(samples, 0); err != nil {
		t.Fatalf("IndexSamples failed: %v", err)
	}
	// Index again: document ids are sample names, so counts stay stable.
	if err := ix.IndexSamples(samples, 0); err != nil {
		t.Fatalf("re-IndexSamples failed: %v", err)
	}

	count, err := ix.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 samples after reindex, got %d", count)
	}
}

func TestSamplesWithoutNamesAreSkipped(t *testing.T) {
	ix := setupIndex(t)
	nameless := sample.FromMap(map[string]any{"genome": "hg38"})

	if err := ix.IndexSamples([]*sample.Sample{nameless}, 0); err != nil {
		t.Fatalf("IndexSamples failed: %v", err)
	}
	count, _ := ix.Count()
	if count != 0 {
		t.Errorf("nameless samples should be skipped, indexed %d", count)
	}
}
