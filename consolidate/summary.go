package consolidate

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// Summary renders the category summary text that accompanies the
// consolidated table.
func Summary(genes []*Gene) string {
	var b strings.Builder

	div := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	withMouse := 0
	multiSource := 0
	totalScore := 0
	categoryCounts := make(map[string]int)
	scoreCounts := make(map[int]int)

	for _, g := range genes {
		if g.MouseSymbol != "" {
			withMouse++
		}
		if g.EvidenceScore > 1 {
			multiSource++
		}
		totalScore += g.EvidenceScore
		categoryCounts[g.Category]++
		scoreCounts[g.EvidenceScore]++
	}

	pct := func(n int) float64 {
		if len(genes) == 0 {
			return 0
		}
		return 100 * float64(n) / float64(len(genes))
	}

	avg := 0.0
	if len(genes) > 0 {
		avg = float64(totalScore) / float64(len(genes))
	}

	fmt.Fprintln(&b, div)
	fmt.Fprintln(&b, "GENE SET CONSOLIDATION SUMMARY")
	fmt.Fprintln(&b, div)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total unique human genes: %d\n", len(genes))
	fmt.Fprintf(&b, "Genes with mouse orthologs: %d (%.1f%%)\n", withMouse, pct(withMouse))
	fmt.Fprintf(&b, "Average evidence score: %.2f\n", avg)
	fmt.Fprintf(&b, "Genes from multiple sources: %d (%.1f%%)\n", multiSource, pct(multiSource))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, sub)
	fmt.Fprintln(&b, "CATEGORY DISTRIBUTION")
	fmt.Fprintln(&b, sub)

	for _, category := range CategoryOrder {
		n := categoryCounts[category]
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", category, n, pct(n))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, sub)
	fmt.Fprintln(&b, "EVIDENCE SCORE DISTRIBUTION")
	fmt.Fprintln(&b, sub)

	scores := make([]int, 0, len(scoreCounts))
	for s := range scoreCounts {
		scores = append(scores, s)
	}
	sort.Ints(scores)
	for _, s := range scores {
		fmt.Fprintf(&b, "  %d source(s): %d genes\n", s, scoreCounts[s])
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, sub)
	fmt.Fprintln(&b, "TOP 20 GENES BY EVIDENCE SCORE")
	fmt.Fprintln(&b, sub)

	// genes are already sorted by score desc then symbol asc
	top := genes
	if len(top) > 20 {
		top = top[:20]
	}
	for _, g := range top {
		fmt.Fprintf(&b, "  %s: %s (score=%d, sources: %s)\n", g.HumanSymbol, g.Category, g.EvidenceScore, g.Sources)
	}

	return b.String()
}

// WriteSummary saves the summary text.
func WriteSummary(path string, genes []*Gene) error {
	if err := os.WriteFile(path, []byte(Summary(genes)), 0o644); err != nil {
		return pfx.Err(err)
	}

	return nil
}
