// Package service provides high-level logic shared by the CLI and the API
// server: resolving pipeline invocations for samples and reading back the
// recorded run log.
package service

import (
	"context"
	"time"

	"github.com/zx0223winner/peppro/internal/config"
	"github.com/zx0223winner/peppro/internal/database"
	"github.com/zx0223winner/peppro/internal/registry"
	"github.com/zx0223winner/peppro/internal/resolver"
	"github.com/zx0223winner/peppro/internal/sample"
)

// ResolveService builds pipeline invocations against a fixed registry and
// runner configuration. Optionally records them to the run log.
type ResolveService struct {
	cfg *config.Config
	reg *registry.Registry
	db  *database.DB // nil when recording is disabled
}

// NewResolveService creates a new resolve service instance.
func NewResolveService(cfg *config.Config, reg *registry.Registry, db *database.DB) *ResolveService {
	return &ResolveService{cfg: cfg, reg: reg, db: db}
}

// ResolveRequest is one sample to resolve.
type ResolveRequest struct {
	Attributes map[string]any `json:"attributes"`
	Profile    string         `json:"profile,omitempty"`
	Record     bool           `json:"record,omitempty"`
}

// ResolveResponse carries the expanded invocation.
type ResolveResponse struct {
	SampleName  string    `json:"sample_name"`
	Genome      string    `json:"genome"`
	Argv        []string  `json:"argv"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	RunID       int64     `json:"run_id,omitempty"`
	Resolved    time.Time `json:"resolved"`
}

// Resolve builds the invocation for one sample.
func (rs *ResolveService) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	s := sample.FromMap(req.Attributes)
	return rs.ResolveSample(ctx, s, req.Profile, req.Record)
}

// ResolveSample builds the invocation for an already-constructed sample.
func (rs *ResolveService) ResolveSample(ctx context.Context, s *sample.Sample, profile string, record bool) (*ResolveResponse, error) {
	p, err := rs.cfg.Profile(profile)
	if err != nil {
		return nil, err
	}
	rc := resolver.RunConfig{
		Pipeline:     rs.cfg.PipelinePath,
		OutputParent: rs.cfg.OutputParent,
		Cores:        p.Cores,
		Mem:          p.Mem,
	}

	res, err := resolver.Resolve(s, rs.reg, rc)
	if err != nil {
		return nil, err
	}

	resp := &ResolveResponse{
		SampleName: s.Name(),
		Genome:     s.Genome(),
		Argv:       res.Argv,
		Resolved:   time.Now(),
	}
	for _, d := range res.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, d.String())
	}

	if record && rs.db != nil {
		id, err := rs.db.RecordInvocation(&database.Invocation{
			SampleName:  resp.SampleName,
			Genome:      resp.Genome,
			Pipeline:    rs.cfg.PipelinePath,
			Argv:        resp.Argv,
			Diagnostics: resp.Diagnostics,
		})
		if err != nil {
			return nil, err
		}
		resp.RunID = id
	}
	return resp, nil
}

// Registry exposes the service's registry for read-only listings.
func (rs *ResolveService) Registry() *registry.Registry {
	return rs.reg
}

// RunService provides read access to the recorded run log.
type RunService struct {
	db *database.DB
}

// NewRunService creates a new run service instance.
func NewRunService(db *database.DB) *RunService {
	return &RunService{db: db}
}

// List returns recorded invocations, newest first.
func (r *RunService) List(ctx context.Context, limit, offset int) ([]*database.Invocation, error) {
	return r.db.ListInvocations(limit, offset)
}

// Get returns one recorded invocation.
func (r *RunService) Get(ctx context.Context, id int64) (*database.Invocation, error) {
	return r.db.GetInvocation(id)
}

// Stats returns run log summary counts.
func (r *RunService) Stats(ctx context.Context) (*database.Stats, error) {
	return r.db.GetStats()
}
