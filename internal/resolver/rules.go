package resolver

// defaultRules is the argument surface of the PRO-seq pipeline script.
// Declaration order is the emission order of the optional flags.
//
// The --search-file and --fasta assets are only needed by the seqOutBias
// workflow, so both are gated on the sob switch being set on the sample.
var defaultRules = []Rule{
	{Flag: "--input2", Kind: ValueArg, Key: "read2"},
	{Flag: "--protocol", Kind: ValueArg, Key: "protocol"},
	{Flag: "--adapter-tool", Kind: ValueArg, Key: "adapter"},
	{Flag: "--dedup-tool", Kind: ValueArg, Key: "dedup"},
	{Flag: "--trimmer-tool", Kind: ValueArg, Key: "trimmer"},
	{Flag: "--umi-len", Kind: ValueArg, Key: "umi_len"},
	{Flag: "--max-len", Kind: ValueArg, Key: "max_len"},
	{Flag: "--sob", Kind: SwitchArg, Key: "sob"},
	{Flag: "--scale", Kind: SwitchArg, Key: "scale"},
	{
		Flag:       "--prealignment-index",
		Kind:       ListArg,
		Key:        "prealignment_index",
		NamesKey:   "prealignment_names",
		NamesAsset: AssetRef{Category: "bowtie2_index", Attr: "dir"},
	},
	{
		Flag:  "--genome-index",
		Kind:  ValueArg,
		Key:   "genome_index",
		Asset: AssetRef{Category: "bowtie2_index", Attr: "dir"},
	},
	{
		Flag:  "--chrom-sizes",
		Kind:  ValueArg,
		Key:   "chrom_sizes",
		Asset: AssetRef{Category: "fasta", Attr: "chrom_sizes"},
	},
	{
		Flag:  "--TSS-name",
		Kind:  ValueArg,
		Key:   "TSS_name",
		Asset: AssetRef{Category: "refgene_anno", Attr: "refgene_tss"},
	},
	{
		Flag:  "--pi-tss",
		Kind:  ValueArg,
		Key:   "pi_tss",
		Asset: AssetRef{Category: "ensembl_gtf", Attr: "ensembl_tss"},
	},
	{
		Flag:  "--pi-body",
		Kind:  ValueArg,
		Key:   "pi_body",
		Asset: AssetRef{Category: "ensembl_gtf", Attr: "ensembl_gene_body"},
	},
	{
		Flag:  "--pre-name",
		Kind:  ValueArg,
		Key:   "pre_name",
		Asset: AssetRef{Category: "refgene_anno", Attr: "refgene_pre_mRNA"},
	},
	{
		Flag:  "--exon-name",
		Kind:  ValueArg,
		Key:   "exon_name",
		Asset: AssetRef{Category: "refgene_anno", Attr: "refgene_exon"},
	},
	{
		Flag:  "--intron-name",
		Kind:  ValueArg,
		Key:   "intron_name",
		Asset: AssetRef{Category: "refgene_anno", Attr: "refgene_intron"},
	},
	{
		Flag:  "--anno-name",
		Kind:  ValueArg,
		Key:   "anno_name",
		Asset: AssetRef{Category: "feat_annotation", Attr: "feat_annotation"},
	},
	{
		Flag:  "--search-file",
		Kind:  ValueArg,
		Key:   "search_file",
		Asset: AssetRef{Category: "tallymer_index", Attr: "search_file"},
		Gate:  "sob",
	},
	{
		Flag:  "--fasta",
		Kind:  ValueArg,
		Key:   "fasta",
		Asset: AssetRef{Category: "fasta", Attr: "fasta"},
		Gate:  "sob",
	},
	{Flag: "--coverage", Kind: SwitchArg, Key: "coverage"},
	{Flag: "--keep", Kind: SwitchArg, Key: "keep"},
	{Flag: "--keep-mito", Kind: SwitchArg, Key: "keep_mito"},
	{Flag: "--noFIFO", Kind: SwitchArg, Key: "no_fifo"},
	{Flag: "--complexity", Kind: SwitchArg, Key: "complexity"},
	{Flag: "--prioritize", Kind: SwitchArg, Key: "prioritize"},
}

// DefaultRules returns a copy of the built-in rule list, for display and
// for callers composing custom rule sets on top of it.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
