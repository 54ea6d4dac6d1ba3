// Package search maintains a Bleve full-text index over sample sheets, so
// large projects can locate samples by attribute without re-reading every
// sheet. The index is rebuilt from a sheet by `peppro samples index`.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	apperrors "github.com/zx0223winner/peppro/internal/errors"
	"github.com/zx0223winner/peppro/internal/sample"
)

// Index wraps the Bleve search index
type Index struct {
	index bleve.Index
	path  string
}

// Open opens an existing index or creates a new one at path.
func Open(path string) (*Index, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, createSampleIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	return &Index{index: index, path: path}, nil
}

// createSampleIndexMapping indexes identifier-like attributes exactly and
// everything else with the standard analyzer.
func createSampleIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("sample_name", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("genome", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("read_type", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("protocol", textFieldMapping())
	docMapping.AddFieldMappingsAt("read1", textFieldMapping())
	docMapping.AddFieldMappingsAt("read2", textFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func keywordFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

func textFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "standard"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

// IndexSamples (re)indexes the given samples in batches. The sample_name
// is the document id, so re-indexing a sheet replaces earlier entries.
func (ix *Index) IndexSamples(samples []*sample.Sample, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}

	skipped := apperrors.NewSkipCounter("indexing samples")
	batch := ix.index.NewBatch()
	for _, s := range samples {
		name := s.Name()
		if name == "" {
			skipped.Skip(errors.New("sample has no sample_name"), "unnamed sample")
			continue
		}
		if err := batch.Index(name, flatten(s)); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", name, err)
		}
		if batch.Size() >= batchSize {
			if err := ix.index.Batch(batch); err != nil {
				return fmt.Errorf("failed to flush index batch: %w", err)
			}
			batch = ix.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := ix.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to flush index batch: %w", err)
		}
	}
	skipped.Report()
	return nil
}

// flatten turns a sample into an indexable document. List attributes are
// joined so they tokenize as text; presence markers index as their key name.
func flatten(s *sample.Sample) map[string]string {
	doc := make(map[string]string)
	for key, value := range s.ToMap() {
		switch v := value.(type) {
		case string:
			doc[key] = v
		case []string:
			doc[key] = strings.Join(v, " ")
		default:
			doc[key] = key
		}
	}
	return doc
}

// Result is one search hit.
type Result struct {
	SampleName string            `json:"sample_name"`
	Score      float64           `json:"score"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Search runs a query-string query and returns ranked hits.
func (ix *Index) Search(query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 100
	}

	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"*"}

	res, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := Result{SampleName: hit.ID, Score: hit.Score}
		if len(hit.Fields) > 0 {
			r.Fields = make(map[string]string, len(hit.Fields))
			for k, v := range hit.Fields {
				if str, ok := v.(string); ok {
					r.Fields[k] = str
				}
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// Count returns the number of indexed samples.
func (ix *Index) Count() (uint64, error) {
	return ix.index.DocCount()
}

// Close releases the index.
func (ix *Index) Close() error {
	return ix.index.Close()
}
