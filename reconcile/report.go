package reconcile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/depmap"
	fet "github.com/glycerine/golang-fisher-exact"
)

// Report renders the classification-confidence narrative in markdown.
func Report(genes []*Gene, ev Evidence, now time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Apoptotic Gene Classification Report")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Genes: %d\n", len(genes))
	fmt.Fprintln(&b)

	writeCategoryTable(&b, genes)
	writeConfidenceTable(&b, genes)
	writeEnrichment(&b, genes, ev)
	writeChronosHistogram(&b, genes, ev)
	writeReassignments(&b, genes)

	return b.String()
}

func writeCategoryTable(b *strings.Builder, genes []*Gene) {
	before := make(map[string]int)
	after := make(map[string]int)
	for _, g := range genes {
		before[g.Category]++
		after[g.FinalCategory]++
	}

	fmt.Fprintln(b, "## Category distribution")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "| Category | Before reconciliation | After |")
	fmt.Fprintln(b, "|---|---:|---:|")
	for _, category := range consolidate.CategoryOrder {
		fmt.Fprintf(b, "| %s | %d | %d |\n", category, before[category], after[category])
	}
	fmt.Fprintln(b)
}

func writeConfidenceTable(b *strings.Builder, genes []*Gene) {
	counts := make(map[string]int)
	for _, g := range genes {
		counts[g.Confidence]++
	}

	fmt.Fprintln(b, "## Classification confidence")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "| Confidence | Genes |")
	fmt.Fprintln(b, "|---|---:|")
	for _, c := range []string{ConfidenceHigh, ConfidenceMedium, ConfidenceLow} {
		fmt.Fprintf(b, "| %s | %d |\n", c, counts[c])
	}
	fmt.Fprintln(b)
}

// writeEnrichment tests whether DepMap-essential genes concentrate in the
// Anti-apoptotic class, the expected signature if the fitness evidence and
// the curation agree.
func writeEnrichment(b *strings.Builder, genes []*Gene, ev Evidence) {
	if len(ev.Fitness) == 0 {
		return
	}

	var antiEssential, antiOther, restEssential, restOther int
	for _, g := range genes {
		fit, exists := ev.Fitness[g.HumanSymbol]
		if !exists {
			continue
		}

		essential := fit.Call == depmap.CallEssential
		anti := g.FinalCategory == consolidate.CategoryAnti

		switch {
		case anti && essential:
			antiEssential++
		case anti:
			antiOther++
		case essential:
			restEssential++
		default:
			restOther++
		}
	}

	total := antiEssential + antiOther + restEssential + restOther
	if total == 0 {
		return
	}

	_, _, _, twop := fet.FisherExactTest(antiEssential, antiOther, restEssential, restOther)

	fmt.Fprintln(b, "## Essentiality enrichment")
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Of %d genes with CRISPR fitness data, %d are pan-essential.\n", total, antiEssential+restEssential)
	fmt.Fprintf(b, "Anti-apoptotic: %d essential / %d not; all other categories: %d essential / %d not.\n",
		antiEssential, antiOther, restEssential, restOther)
	fmt.Fprintf(b, "Fisher exact test (two-sided): p = %.2e\n", twop)
	fmt.Fprintln(b)
}

func writeChronosHistogram(b *strings.Builder, genes []*Gene, ev Evidence) {
	values := make([]float64, 0, len(genes))
	for _, g := range genes {
		if fit, exists := ev.Fitness[g.HumanSymbol]; exists {
			values = append(values, fit.MeanChronos)
		}
	}

	if len(values) < 2 {
		return
	}

	fmt.Fprintln(b, "## Mean Chronos score distribution")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "```")

	hist := histogram.Hist(15, values)
	if err := histogram.Fprint(b, hist, histogram.Linear(40)); err != nil {
		fmt.Fprintln(b, "histogram unavailable:", err)
	}

	fmt.Fprintln(b, "```")
	fmt.Fprintln(b)
}

func writeReassignments(b *strings.Builder, genes []*Gene) {
	fmt.Fprintln(b, "## Reassigned genes")
	fmt.Fprintln(b)

	n := 0
	for _, g := range genes {
		if !g.Reassigned() {
			continue
		}
		n++
		fmt.Fprintf(b, "- **%s**: %s -> %s (%s confidence). %s\n",
			g.HumanSymbol, g.Category, g.FinalCategory, g.Confidence, g.EvidenceNotes)
	}

	if n == 0 {
		fmt.Fprintln(b, "No genes were reassigned.")
	}
	fmt.Fprintln(b)
}

// WriteReport saves the markdown report.
func WriteReport(path string, genes []*Gene, ev Evidence, now time.Time) error {
	if err := os.WriteFile(path, []byte(Report(genes, ev, now)), 0o644); err != nil {
		return pfx.Err(err)
	}

	return nil
}
