package consolidate

import (
	"strings"
	"testing"

	"github.com/cellfate/apoptosisatlas/orthology"
)

func testTable() orthology.Table {
	return orthology.NewTable([]*orthology.SimplePair{
		{HumanSymbol: "BAX", MouseSymbol: "Bax"},
		{HumanSymbol: "BCL2", MouseSymbol: "Bcl2"},
		{HumanSymbol: "TP53", MouseSymbol: "Trp53"},
		{HumanSymbol: "CFLAR", MouseSymbol: "Cflar"},
	})
}

func testSources() map[string][]string {
	return map[string][]string{
		SourceGOProHuman:  {"BAX", "TP53", "CFLAR"},
		SourceGOAntiHuman: {"BCL2", "CFLAR"},
		SourceGOProMouse:  {"Bax", "Xkr4"}, // Xkr4 has no ortholog row
		SourceGOAntiMouse: {"Bcl2"},
		SourceKEGG:        {"BAX", "BCL2", "CASP3"},
		SourceReactome:    {"CASP3"},
		SourceHallmark:    {"BAX"},
	}
}

func genesBySymbol(genes []*Gene) map[string]*Gene {
	out := make(map[string]*Gene)
	for _, g := range genes {
		out[g.HumanSymbol] = g
	}
	return out
}

func TestConsolidateCategories(t *testing.T) {
	genes := Consolidate(testTable(), testSources())
	bysym := genesBySymbol(genes)

	if got := bysym["BAX"].Category; got != CategoryPro {
		t.Errorf("BAX category = %q", got)
	}
	if got := bysym["BCL2"].Category; got != CategoryAnti {
		t.Errorf("BCL2 category = %q", got)
	}
	if got := bysym["CFLAR"].Category; got != CategoryAmbiguous {
		t.Errorf("CFLAR category = %q", got)
	}
	if got := bysym["CASP3"].Category; got != CategoryUnspecified {
		t.Errorf("CASP3 category = %q", got)
	}

	// The unmapped mouse gene must not appear anywhere.
	if _, exists := bysym["XKR4"]; exists {
		t.Error("unmapped mouse gene leaked into the consolidated table")
	}
}

func TestConsolidateEvidence(t *testing.T) {
	genes := Consolidate(testTable(), testSources())
	bysym := genesBySymbol(genes)

	bax := bysym["BAX"]
	if bax.EvidenceScore != 4 {
		t.Errorf("BAX evidence score = %d, want 4", bax.EvidenceScore)
	}
	if bax.Sources != "GO_Pro_Human,GO_Pro_Mouse,Hallmark,KEGG" {
		t.Errorf("BAX sources = %q", bax.Sources)
	}
	if bax.MouseSymbol != "Bax" {
		t.Errorf("BAX mouse symbol = %q", bax.MouseSymbol)
	}

	if !bax.HasSource("GO_") {
		t.Error("GO_ prefix should match GO_Pro_Human")
	}
	if bax.HasSource("Reactome") {
		t.Error("BAX should not match Reactome")
	}
}

func TestConsolidateOrdering(t *testing.T) {
	genes := Consolidate(testTable(), testSources())

	for i := 1; i < len(genes); i++ {
		prev, cur := genes[i-1], genes[i]
		if prev.EvidenceScore < cur.EvidenceScore {
			t.Fatalf("not sorted by score desc: %s(%d) before %s(%d)",
				prev.HumanSymbol, prev.EvidenceScore, cur.HumanSymbol, cur.EvidenceScore)
		}
		if prev.EvidenceScore == cur.EvidenceScore && prev.HumanSymbol > cur.HumanSymbol {
			t.Fatalf("ties not sorted by symbol: %s before %s", prev.HumanSymbol, cur.HumanSymbol)
		}
	}
}

func TestSummary(t *testing.T) {
	genes := Consolidate(testTable(), testSources())
	text := Summary(genes)

	if !strings.Contains(text, "CATEGORY DISTRIBUTION") {
		t.Error("summary missing category section")
	}
	if !strings.Contains(text, "Pro-apoptotic: 2") {
		t.Errorf("summary category counts wrong:\n%s", text)
	}
	if !strings.Contains(text, "TOP 20 GENES BY EVIDENCE SCORE") {
		t.Error("summary missing top genes section")
	}
}
