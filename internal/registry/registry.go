// Package registry provides read-only access to a reference-genome asset
// registry: genome name -> asset category -> attribute -> path. The registry
// is loaded from a refgenie-style genome configuration file and never
// mutated afterwards. Lookups report misses by returning false rather than
// erroring, so callers can treat missing assets as "omit" rather than "fail".
package registry

import (
	"os"
	"sort"

	"github.com/zx0223winner/peppro/internal/errors"
	"gopkg.in/yaml.v3"
)

// Registry maps genome identifiers to categorized asset attributes.
type Registry struct {
	genomes map[string]map[string]map[string]string
}

// genomeConfig mirrors the subset of a refgenie genome configuration file
// the runner cares about.
type genomeConfig struct {
	GenomeFolder string                `yaml:"genome_folder"`
	Genomes      map[string]genomeSpec `yaml:"genomes"`
}

type genomeSpec struct {
	Assets map[string]map[string]string `yaml:"assets"`
}

// New constructs a registry from an in-memory asset map. The map is copied,
// so later changes by the caller do not leak into the registry.
func New(genomes map[string]map[string]map[string]string) *Registry {
	r := &Registry{genomes: make(map[string]map[string]map[string]string, len(genomes))}
	for genome, assets := range genomes {
		r.genomes[genome] = make(map[string]map[string]string, len(assets))
		for category, attrs := range assets {
			m := make(map[string]string, len(attrs))
			for k, v := range attrs {
				m[k] = v
			}
			r.genomes[genome][category] = m
		}
	}
	return r
}

// Empty returns a registry with no genomes. Every lookup misses.
func Empty() *Registry {
	return &Registry{genomes: map[string]map[string]map[string]string{}}
}

// Load reads a genome configuration file and builds the registry.
func Load(path string) (*Registry, error) {
	const op = errors.Op("registry.Load")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "reading genome config")
	}

	var cfg genomeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.E(op, errors.KindParse, err, "parsing genome config")
	}

	genomes := make(map[string]map[string]map[string]string, len(cfg.Genomes))
	for name, spec := range cfg.Genomes {
		genomes[name] = spec.Assets
	}
	return New(genomes), nil
}

// Lookup resolves registry[genome][category][attr]. A miss at any level
// returns ("", false); it never errors.
func (r *Registry) Lookup(genome, category, attr string) (string, bool) {
	assets, ok := r.genomes[genome]
	if !ok {
		return "", false
	}
	attrs, ok := assets[category]
	if !ok {
		return "", false
	}
	v, ok := attrs[attr]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// HasGenome reports whether the registry knows the given genome.
func (r *Registry) HasGenome(genome string) bool {
	_, ok := r.genomes[genome]
	return ok
}

// Genomes returns the known genome names, sorted.
func (r *Registry) Genomes() []string {
	names := make([]string, 0, len(r.genomes))
	for name := range r.genomes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the asset categories defined for a genome, sorted.
func (r *Registry) Categories(genome string) []string {
	assets, ok := r.genomes[genome]
	if !ok {
		return nil
	}
	categories := make([]string, 0, len(assets))
	for category := range assets {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Assets returns a copy of one genome's full asset map, for display.
func (r *Registry) Assets(genome string) map[string]map[string]string {
	assets, ok := r.genomes[genome]
	if !ok {
		return nil
	}
	out := make(map[string]map[string]string, len(assets))
	for category, attrs := range assets {
		m := make(map[string]string, len(attrs))
		for k, v := range attrs {
			m[k] = v
		}
		out[category] = m
	}
	return out
}
