package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/zx0223winner/peppro/internal/config"
	"github.com/zx0223winner/peppro/internal/database"
	"github.com/zx0223winner/peppro/internal/registry"
	"github.com/zx0223winner/peppro/internal/resolver"
	"github.com/zx0223winner/peppro/internal/testutil"
)

func setupService(t *testing.T) *ResolveService {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.PipelinePath = "/pipelines/peppro.py"
	cfg.OutputParent = "/results"

	reg := registry.New(map[string]map[string]map[string]string{
		"hg38": {
			"bowtie2_index": {"dir": "/genomes/hg38/bowtie2_index"},
		},
	})

	db, err := database.Initialize(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewResolveService(cfg, reg, db)
}

func TestResolve(t *testing.T) {
	rs := setupService(t)

	resp, err := rs.Resolve(context.Background(), &ResolveRequest{
		Attributes: map[string]any{
			"sample_name": "K562_pro",
			"genome":      "hg38",
			"read1":       "r1.fq.gz",
			"read_type":   "single",
		},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if resp.SampleName != "K562_pro" || resp.Genome != "hg38" {
		t.Errorf("unexpected response identity: %+v", resp)
	}
	if resp.Argv[0] != "/pipelines/peppro.py" {
		t.Errorf("argv should start with the pipeline path, got %v", resp.Argv[0])
	}
	if resp.RunID != 0 {
		t.Error("run should not be recorded unless requested")
	}
}

func TestResolveRecords(t *testing.T) {
	rs := setupService(t)

	resp, err := rs.ResolveSample(context.Background(), testutil.Sample("K562_pro"), "", true)
	if err != nil {
		t.Fatalf("ResolveSample failed: %v", err)
	}
	if resp.RunID == 0 {
		t.Fatal("expected a run id when recording")
	}

	runs := NewRunService(rs.db)
	got, err := runs.Get(context.Background(), resp.RunID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SampleName != "K562_pro" {
		t.Errorf("recorded sample = %q", got.SampleName)
	}
}

func TestResolveMissingRequired(t *testing.T) {
	rs := setupService(t)

	_, err := rs.Resolve(context.Background(), &ResolveRequest{
		Attributes: map[string]any{"sample_name": "S1"},
	})
	if err == nil {
		t.Fatal("expected error for incomplete sample")
	}
	var mae *resolver.MissingAttributeError
	if !errors.As(err, &mae) {
		t.Errorf("expected MissingAttributeError, got %T", err)
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	rs := setupService(t)

	_, err := rs.Resolve(context.Background(), &ResolveRequest{
		Attributes: map[string]any{
			"sample_name": "S1",
			"genome":      "hg38",
			"read1":       "r1.fq.gz",
			"read_type":   "single",
		},
		Profile: "no-such-profile",
	})
	if err == nil {
		t.Error("expected error for unknown compute profile")
	}
}
