// Package geneset retrieves and persists apoptosis-related gene sets from
// the Enrichr/MSigDB library service.
package geneset

import (
	"sort"

	"github.com/samber/lo"
)

// Category labels the directionality a source asserts for its genes.
const (
	CategoryPro     = "Pro"
	CategoryAnti    = "Anti"
	CategoryGeneral = "General"
)

// Record is one gene within one gene set, the row format of the raw_data
// CSVs.
type Record struct {
	GeneSymbol  string `csv:"gene_symbol"`
	GeneSetName string `csv:"gene_set_name"`
	Source      string `csv:"source"`
	Category    string `csv:"category"`
	Organism    string `csv:"organism"`
}

// Library maps gene set names to their member gene symbols.
type Library map[string][]string

// Records flattens the chosen gene sets into raw_data rows, one per
// gene-per-set, sorted by set name then symbol.
func Records(sets Library, source, category, organism string) []*Record {
	out := make([]*Record, 0)

	names := lo.Keys(sets)
	sort.Strings(names)

	for _, name := range names {
		for _, gene := range lo.Uniq(sets[name]) {
			out = append(out, &Record{
				GeneSymbol:  gene,
				GeneSetName: name,
				Source:      source,
				Category:    category,
				Organism:    organism,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GeneSetName != out[j].GeneSetName {
			return out[i].GeneSetName < out[j].GeneSetName
		}
		return out[i].GeneSymbol < out[j].GeneSymbol
	})

	return out
}

// UniqueSymbols returns the distinct gene symbols across records.
func UniqueSymbols(records []*Record) []string {
	symbols := make([]string, 0, len(records))
	for _, r := range records {
		symbols = append(symbols, r.GeneSymbol)
	}

	symbols = lo.Uniq(symbols)
	sort.Strings(symbols)

	return symbols
}
