package database

import (
	"path/filepath"
	"testing"
)

// Helper to create a temporary test database
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitialize(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestInitializeInvalidPath(t *testing.T) {
	if _, err := Initialize("/nonexistent/path/test.db"); err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestRecordAndGetInvocation(t *testing.T) {
	db := setupTestDB(t)

	inv := &Invocation{
		SampleName: "K562_pro",
		Genome:     "hg38",
		Pipeline:   "/pipelines/peppro.py",
		Argv: []string{
			"/pipelines/peppro.py", "--sample-name", "K562_pro",
			"--genome", "hg38", "-P", "4", "-M", "16000",
		},
		Diagnostics: []string{"--genome-index: unresolved reference (hg38.bowtie2_index.dir not in registry)"},
	}

	id, err := db.RecordInvocation(inv)
	if err != nil {
		t.Fatalf("RecordInvocation failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := db.GetInvocation(id)
	if err != nil {
		t.Fatalf("GetInvocation failed: %v", err)
	}
	if got.SampleName != "K562_pro" || got.Genome != "hg38" {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(got.Argv) != len(inv.Argv) {
		t.Errorf("argv round-trip lost tokens: %v", got.Argv)
	}
	if len(got.Diagnostics) != 1 {
		t.Errorf("diagnostics round-trip failed: %v", got.Diagnostics)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestGetInvocationNotFound(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.GetInvocation(42); err == nil {
		t.Error("expected error for missing invocation")
	}
}

func TestListInvocations(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"S1", "S2", "S3"} {
		_, err := db.RecordInvocation(&Invocation{
			SampleName: name,
			Genome:     "hg38",
			Pipeline:   "/pipelines/peppro.py",
			Argv:       []string{"/pipelines/peppro.py", "--sample-name", name},
		})
		if err != nil {
			t.Fatalf("RecordInvocation failed: %v", err)
		}
	}

	invs, err := db.ListInvocations(10, 0)
	if err != nil {
		t.Fatalf("ListInvocations failed: %v", err)
	}
	if len(invs) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(invs))
	}
	// Newest first
	if invs[0].SampleName != "S3" {
		t.Errorf("expected newest first, got %q", invs[0].SampleName)
	}

	limited, err := db.ListInvocations(2, 1)
	if err != nil {
		t.Fatalf("ListInvocations with paging failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 invocations with limit, got %d", len(limited))
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)

	records := map[string]string{"S1": "hg38", "S2": "hg38", "S3": "mm10"}
	for name, genome := range records {
		if _, err := db.RecordInvocation(&Invocation{
			SampleName: name, Genome: genome,
			Pipeline: "/pipelines/peppro.py",
			Argv:     []string{"/pipelines/peppro.py"},
		}); err != nil {
			t.Fatalf("RecordInvocation failed: %v", err)
		}
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Invocations != 3 {
		t.Errorf("expected 3 invocations, got %d", stats.Invocations)
	}
	if stats.ByGenome["hg38"] != 2 || stats.ByGenome["mm10"] != 1 {
		t.Errorf("unexpected genome counts: %v", stats.ByGenome)
	}
}
