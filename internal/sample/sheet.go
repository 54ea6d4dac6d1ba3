package sample

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/zx0223winner/peppro/internal/errors"
	"gopkg.in/yaml.v3"
)

// listAttributes are sheet columns whose cell holds a ;-separated list.
var listAttributes = map[string]bool{
	"prealignment_names": true,
	"prealignment_index": true,
}

// LoadSheet reads a sample table. The format is chosen by extension:
// .csv and .tsv are tabular with a header row, .yaml/.yml carry a
// "samples" list of attribute maps.
func LoadSheet(path string) ([]*Sample, error) {
	const op = errors.Op("sample.LoadSheet")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadTable(path, ',')
	case ".tsv", ".txt":
		return loadTable(path, '\t')
	case ".yaml", ".yml":
		return loadYAML(path)
	}
	return nil, errors.E(op, errors.KindValidation,
		"unsupported sample sheet format: "+filepath.Ext(path))
}

func loadTable(path string, sep rune) ([]*Sample, error) {
	const op = errors.Op("sample.loadTable")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "opening sample sheet")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.E(op, errors.KindParse, err, "reading sample sheet")
	}
	if len(rows) == 0 {
		return nil, errors.E(op, errors.KindValidation, "sample sheet has no header row")
	}

	header := rows[0]
	samples := make([]*Sample, 0, len(rows)-1)
	for _, row := range rows[1:] {
		s := NewSample()
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				// Empty cells mean the attribute is absent for this sample.
				continue
			}
			key := strings.TrimSpace(header[i])
			if listAttributes[key] {
				s.Set(key, splitList(cell))
				continue
			}
			s.Set(key, cell)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

type yamlSheet struct {
	Samples []map[string]any `yaml:"samples"`
}

func loadYAML(path string) ([]*Sample, error) {
	const op = errors.Op("sample.loadYAML")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err, "reading sample sheet")
	}

	var sheet yamlSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, errors.E(op, errors.KindParse, err, "parsing sample sheet")
	}

	samples := make([]*Sample, 0, len(sheet.Samples))
	for _, m := range sheet.Samples {
		samples = append(samples, FromMap(m))
	}
	return samples, nil
}

func splitList(cell string) []string {
	parts := strings.Split(cell, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
