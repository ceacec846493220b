// Package breakdown splits the final gene list into per-source deliverables
// while preserving the consensus categorization.
package breakdown

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/consolidate"
)

// SourcePattern pairs a deliverable name with the prefix it matches in the
// sources column.
type SourcePattern struct {
	Name    string
	Pattern string
}

// Patterns lists the per-source deliverables in output order. GO matches
// every GO_-prefixed source (pro and anti, human and mouse).
var Patterns = []SourcePattern{
	{Name: "KEGG", Pattern: consolidate.SourceKEGG},
	{Name: "Reactome", Pattern: consolidate.SourceReactome},
	{Name: "Hallmark", Pattern: consolidate.SourceHallmark},
	{Name: "GO", Pattern: "GO_"},
}

// Filter returns the genes whose sources include one matching the prefix
// pattern.
func Filter(genes []*annotate.Gene, pattern string) []*annotate.Gene {
	out := make([]*annotate.Gene, 0)

	for _, g := range genes {
		for _, s := range strings.Split(g.Sources, ",") {
			if strings.HasPrefix(s, pattern) {
				out = append(out, g)
				break
			}
		}
	}

	return out
}

// SortByCategory orders genes by the fixed category order, then by human
// symbol.
func SortByCategory(genes []*annotate.Gene) {
	rank := make(map[string]int, len(consolidate.CategoryOrder))
	for i, c := range consolidate.CategoryOrder {
		rank[c] = i
	}

	sort.SliceStable(genes, func(i, j int) bool {
		ri, rj := rank[genes[i].Category], rank[genes[j].Category]
		if ri != rj {
			return ri < rj
		}
		return genes[i].HumanSymbol < genes[j].HumanSymbol
	})
}

// Stats counts genes per category for one source, plus the total.
type Stats struct {
	Source     string
	ByCategory map[string]int
	Total      int
}

func Count(source string, genes []*annotate.Gene) Stats {
	s := Stats{Source: source, ByCategory: make(map[string]int)}
	for _, g := range genes {
		s.ByCategory[g.Category]++
		s.Total++
	}
	return s
}

// SummaryReport renders the breakdown summary text.
func SummaryReport(all []Stats, now time.Time) string {
	var b strings.Builder

	div := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	fmt.Fprintln(&b, div)
	fmt.Fprintln(&b, "APOPTOTIC GENE LIST - SOURCE BREAKDOWN SUMMARY")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, div)
	fmt.Fprintln(&b)

	for _, stats := range all {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, stats.Source)
		fmt.Fprintln(&b, sub)
		for _, category := range consolidate.CategoryOrder {
			fmt.Fprintf(&b, "  %-20s: %4d genes\n", category, stats.ByCategory[category])
		}
		fmt.Fprintf(&b, "  %-20s: %4d genes\n", "TOTAL", stats.Total)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, div)
	fmt.Fprintln(&b, "Notes:")
	fmt.Fprintln(&b, "- Categories are consensus annotations derived from multiple sources")
	fmt.Fprintln(&b, "- A gene may appear in multiple source lists")
	fmt.Fprintln(&b, "- GO includes pro- and anti-apoptotic annotations from both organisms")
	fmt.Fprintln(&b, div)

	return b.String()
}
