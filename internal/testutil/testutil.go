// Package testutil provides shared fixtures for the runner's tests: a
// canned genome registry and sample sheets matching the tutorial data.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zx0223winner/peppro/internal/registry"
	"github.com/zx0223winner/peppro/internal/sample"
)

// WriteFile creates a file with the given content under a temp dir and
// returns its path. Cleanup is automatic.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Registry returns a registry covering the asset categories the default
// rules reference, for hg38 plus two prealignment genomes.
func Registry() *registry.Registry {
	return registry.New(map[string]map[string]map[string]string{
		"hg38": {
			"bowtie2_index": {"dir": "/genomes/hg38/bowtie2_index"},
			"fasta": {
				"fasta":       "/genomes/hg38/hg38.fa",
				"chrom_sizes": "/genomes/hg38/hg38.chrom.sizes",
			},
			"refgene_anno": {
				"refgene_tss":      "/genomes/hg38/hg38_TSS.bed",
				"refgene_pre_mRNA": "/genomes/hg38/hg38_pre_mRNA.bed",
				"refgene_exon":     "/genomes/hg38/hg38_exons.bed",
				"refgene_intron":   "/genomes/hg38/hg38_introns.bed",
			},
			"ensembl_gtf": {
				"ensembl_tss":       "/genomes/hg38/hg38_ensembl_TSS.bed",
				"ensembl_gene_body": "/genomes/hg38/hg38_ensembl_gene_body.bed",
			},
			"feat_annotation": {"feat_annotation": "/genomes/hg38/hg38_annotations.bed.gz"},
			"tallymer_index":  {"search_file": "/genomes/hg38/hg38.tal_30.gtTxt.gz"},
		},
		"human_rDNA": {
			"bowtie2_index": {"dir": "/genomes/human_rDNA/bowtie2_index"},
		},
		"rCRSd": {
			"bowtie2_index": {"dir": "/genomes/rCRSd/bowtie2_index"},
		},
	})
}

// Sample returns a minimal runnable sample with the given name.
func Sample(name string) *sample.Sample {
	return sample.FromMap(map[string]any{
		"sample_name": name,
		"genome":      "hg38",
		"read1":       name + "_r1.fq.gz",
		"read_type":   "single",
	})
}

// SheetCSV is a small tutorial-style sample sheet.
const SheetCSV = "sample_name,genome,read1,read_type,read2,prealignment_names,umi_len\n" +
	"K562_pro_1,hg38,K562_1_r1.fq.gz,single,,human_rDNA;rCRSd,8\n" +
	"K562_pro_2,hg38,K562_2_r1.fq.gz,paired,K562_2_r2.fq.gz,,\n"
