package breakdown

import (
	"strings"
	"testing"
	"time"

	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/consolidate"
)

func testGenes() []*annotate.Gene {
	return []*annotate.Gene{
		{HumanSymbol: "BAX", Category: consolidate.CategoryPro, Sources: "GO_Pro_Human,KEGG,Hallmark"},
		{HumanSymbol: "BCL2", Category: consolidate.CategoryAnti, Sources: "GO_Anti_Human,KEGG"},
		{HumanSymbol: "CASP3", Category: consolidate.CategoryUnspecified, Sources: "KEGG,Reactome"},
		{HumanSymbol: "CFLAR", Category: consolidate.CategoryAmbiguous, Sources: "GO_Anti_Human,GO_Pro_Human"},
	}
}

func TestFilter(t *testing.T) {
	genes := testGenes()

	kegg := Filter(genes, "KEGG")
	if len(kegg) != 3 {
		t.Errorf("KEGG: expected 3 genes, got %d", len(kegg))
	}

	// GO_ prefix matches all four GO source names
	gos := Filter(genes, "GO_")
	if len(gos) != 3 {
		t.Errorf("GO: expected 3 genes, got %d", len(gos))
	}

	reactome := Filter(genes, "Reactome")
	if len(reactome) != 1 || reactome[0].HumanSymbol != "CASP3" {
		t.Errorf("Reactome: %+v", reactome)
	}
}

func TestSortByCategory(t *testing.T) {
	genes := testGenes()
	SortByCategory(genes)

	want := []string{"BAX", "BCL2", "CFLAR", "CASP3"}
	for i, sym := range want {
		if genes[i].HumanSymbol != sym {
			t.Fatalf("position %d: got %s, want %s", i, genes[i].HumanSymbol, sym)
		}
	}
}

func TestCountAndSummary(t *testing.T) {
	genes := testGenes()

	all := make([]Stats, 0, len(Patterns))
	for _, p := range Patterns {
		all = append(all, Count(p.Name, Filter(genes, p.Pattern)))
	}

	if all[0].Source != "KEGG" || all[0].Total != 3 {
		t.Errorf("KEGG stats: %+v", all[0])
	}

	text := SummaryReport(all, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(text, "SOURCE BREAKDOWN SUMMARY") {
		t.Error("summary missing title")
	}
	if !strings.Contains(text, "GO") || !strings.Contains(text, "TOTAL") {
		t.Error("summary missing sections")
	}
}
