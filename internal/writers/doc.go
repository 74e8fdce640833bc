// Package writers turns engine hits into serialized outputs.
//
// Writers own every presentation decision: item IDs, GFF/TSV/JSON/JSONL
// rows and the codon and amino FASTA side files. Engine stays domain-only;
// pipeline stays orchestration-only. JSON/JSONL go through pkg/api (v1).
package writers
