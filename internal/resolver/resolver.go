// Package resolver builds pipeline invocations. Given a sample's declared
// attributes, a genome asset registry, and the runner's compute settings,
// it produces the full argument vector for the external pipeline script.
//
// Every configurable argument is resolved through the same chain: an
// explicit sample attribute wins, a registry-derived default is tried next,
// and when neither binds the flag is omitted entirely. Resolution is pure:
// no I/O, no mutation of inputs, deterministic output.
package resolver

import (
	"fmt"
)

// Attributes is the view of a sample the resolver needs.
type Attributes interface {
	// Has reports whether the key exists, regardless of its value.
	Has(key string) bool
	// Get returns the key's scalar string value.
	Get(key string) (string, bool)
	// List returns the key's value as a string list.
	List(key string) ([]string, bool)
}

// Registry resolves genome asset attributes. A miss at any level returns
// false; it never errors.
type Registry interface {
	Lookup(genome, category, attr string) (string, bool)
}

// ArgKind determines how a rule binds its argument.
type ArgKind int

const (
	// ValueArg emits "--flag value" when the chain binds.
	ValueArg ArgKind = iota
	// SwitchArg emits a bare "--flag" iff the sample key exists.
	SwitchArg
	// ListArg emits "--flag v1 v2 ..." from a list-valued attribute,
	// expanding genome names into name=path pairs via the registry.
	ListArg
)

// AssetRef names a registry chain: registry[genome][Category][Attr].
// The zero value means the rule has no registry fallback.
type AssetRef struct {
	Category string
	Attr     string
}

func (a AssetRef) isZero() bool { return a.Category == "" && a.Attr == "" }

// Rule describes one configurable argument. Rules are evaluated uniformly
// and in declaration order, which fixes the position of every optional
// flag in the output.
type Rule struct {
	Flag string
	Kind ArgKind

	// Key is the sample attribute consulted first.
	Key string
	// Asset is the registry fallback tried when the sample does not
	// bind the argument.
	Asset AssetRef
	// Gate, when set, names a sample key that must exist before this
	// rule is evaluated at all.
	Gate string

	// NamesKey and NamesAsset drive ListArg expansion: each entry of the
	// NamesKey list is a genome name resolved through NamesAsset into a
	// name=path pair. Entries that fail to resolve are skipped.
	NamesKey   string
	NamesAsset AssetRef
}

// DiagnosticKind categorizes a non-fatal resolution event.
type DiagnosticKind int

const (
	// UnresolvedReference: a registry chain failed and no sample
	// override existed. The flag was omitted.
	UnresolvedReference DiagnosticKind = iota
	// SkippedListEntry: one entry of a list-valued attribute failed to
	// resolve and was dropped; the remaining entries still expanded.
	SkippedListEntry
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvedReference:
		return "unresolved reference"
	case SkippedListEntry:
		return "skipped list entry"
	default:
		return "unknown"
	}
}

// Diagnostic reports a non-fatal event observed while resolving. The
// affected flag was omitted or partially expanded; the invocation is
// still valid.
type Diagnostic struct {
	Flag   string         `json:"flag"`
	Kind   DiagnosticKind `json:"kind"`
	Detail string         `json:"detail"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Flag, d.Kind, d.Detail)
}

// MissingAttributeError reports a sample lacking a required attribute.
// Resolution aborts with no output.
type MissingAttributeError struct {
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return "sample is missing required attribute " + e.Attribute
}

// RunConfig carries invocation parameters sourced from the runner and the
// compute environment, never from the sample or registry.
type RunConfig struct {
	// Pipeline is the path of the pipeline script to invoke.
	Pipeline string
	// OutputParent is the parent directory for per-sample results.
	OutputParent string
	// Cores and Mem are the scheduler's resource grants.
	Cores string
	Mem   string
}

// Resolution is a fully-expanded invocation plus everything the resolver
// chose to leave out.
type Resolution struct {
	Argv        []string     `json:"argv"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// requiredAttributes must be present on every sample.
var requiredAttributes = []string{"sample_name", "genome", "read1", "read_type"}

// Resolve builds the invocation for one sample using the default rule set.
func Resolve(s Attributes, reg Registry, rc RunConfig) (*Resolution, error) {
	return ResolveWith(defaultRules, s, reg, rc)
}

// ResolveWith builds the invocation using a caller-supplied rule list.
// The token order is fixed: pipeline path, required sample flags, output
// parent, compute resources, then each rule in declaration order.
func ResolveWith(rules []Rule, s Attributes, reg Registry, rc RunConfig) (*Resolution, error) {
	for _, key := range requiredAttributes {
		if v, ok := s.Get(key); !ok || v == "" {
			return nil, &MissingAttributeError{Attribute: key}
		}
	}
	if rc.Pipeline == "" {
		return nil, fmt.Errorf("run config has no pipeline path")
	}
	if rc.Cores == "" || rc.Mem == "" {
		return nil, fmt.Errorf("run config has no compute resources")
	}

	name, _ := s.Get("sample_name")
	genome, _ := s.Get("genome")
	read1, _ := s.Get("read1")
	readType, _ := s.Get("read_type")

	res := &Resolution{
		Argv: []string{
			rc.Pipeline,
			"--sample-name", name,
			"--genome", genome,
			"--input", read1,
			"--single-or-paired", readType,
		},
	}
	if rc.OutputParent != "" {
		res.Argv = append(res.Argv, "-O", rc.OutputParent)
	}
	res.Argv = append(res.Argv, "-P", rc.Cores, "-M", rc.Mem)

	for _, rule := range rules {
		applyRule(rule, s, reg, genome, res)
	}
	return res, nil
}

func applyRule(rule Rule, s Attributes, reg Registry, genome string, res *Resolution) {
	if rule.Gate != "" && !s.Has(rule.Gate) {
		return
	}

	switch rule.Kind {
	case SwitchArg:
		if s.Has(rule.Key) {
			res.Argv = append(res.Argv, rule.Flag)
		}

	case ValueArg:
		// Explicit sample value always wins; an empty value counts as
		// unbound and falls through to the registry.
		if v, ok := s.Get(rule.Key); ok && v != "" {
			res.Argv = append(res.Argv, rule.Flag, v)
			return
		}
		if rule.Asset.isZero() {
			return
		}
		if v, ok := reg.Lookup(genome, rule.Asset.Category, rule.Asset.Attr); ok {
			res.Argv = append(res.Argv, rule.Flag, v)
			return
		}
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Flag: rule.Flag,
			Kind: UnresolvedReference,
			Detail: fmt.Sprintf("%s.%s.%s not in registry",
				genome, rule.Asset.Category, rule.Asset.Attr),
		})

	case ListArg:
		if vals, ok := s.List(rule.Key); ok {
			if vals = dropEmpty(vals); len(vals) > 0 {
				res.Argv = append(res.Argv, rule.Flag)
				res.Argv = append(res.Argv, vals...)
			}
			return
		}
		names, ok := s.List(rule.NamesKey)
		if !ok {
			return
		}
		var pairs []string
		for _, n := range names {
			if n == "" {
				continue
			}
			path, found := reg.Lookup(n, rule.NamesAsset.Category, rule.NamesAsset.Attr)
			if !found {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Flag: rule.Flag,
					Kind: SkippedListEntry,
					Detail: fmt.Sprintf("%s.%s.%s not in registry",
						n, rule.NamesAsset.Category, rule.NamesAsset.Attr),
				})
				continue
			}
			pairs = append(pairs, n+"="+path)
		}
		if len(pairs) > 0 {
			res.Argv = append(res.Argv, rule.Flag)
			res.Argv = append(res.Argv, pairs...)
		}
	}
}

func dropEmpty(vals []string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
