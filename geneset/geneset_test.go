package geneset

import "testing"

const gmtSample = "GOBP_POSITIVE_REGULATION_OF_APOPTOTIC_PROCESS\t\tBAX\tBAK1\tTP53\n" +
	"GOBP_NEGATIVE_REGULATION_OF_APOPTOTIC_PROCESS\t\tBCL2\tMCL1\n" +
	"GOBP_REGULATION_OF_MITOPHAGY\t\tPINK1\tPRKN\n" +
	"GOBP_APOPTOTIC_SIGNALING_PATHWAY\t\tCASP3,1.0\tCASP9,1.0\n"

func TestParseGMT(t *testing.T) {
	lib, err := ParseGMT(gmtSample)
	if err != nil {
		t.Fatal(err)
	}

	if len(lib) != 4 {
		t.Errorf("expected 4 gene sets, got %d", len(lib))
	}

	// Weight suffixes must be stripped
	genes := lib["GOBP_APOPTOTIC_SIGNALING_PATHWAY"]
	if len(genes) != 2 || genes[0] != "CASP3" || genes[1] != "CASP9" {
		t.Errorf("unexpected genes: %v", genes)
	}
}

func TestParseGMTMalformed(t *testing.T) {
	if _, err := ParseGMT("NAME_ONLY\n"); err == nil {
		t.Error("expected an error for a line without genes")
	}
}

func TestSelectDirectionalGO(t *testing.T) {
	lib, err := ParseGMT(gmtSample)
	if err != nil {
		t.Fatal(err)
	}

	pro, anti := SelectDirectionalGO(lib)

	if len(pro) != 1 {
		t.Errorf("expected 1 pro set, got %d", len(pro))
	}
	if len(anti) != 1 {
		t.Errorf("expected 1 anti set, got %d", len(anti))
	}
	if _, exists := pro["GOBP_POSITIVE_REGULATION_OF_APOPTOTIC_PROCESS"]; !exists {
		t.Error("positive regulation set not classified as pro")
	}

	// Undirected and non-apoptotic sets are excluded
	if _, exists := pro["GOBP_APOPTOTIC_SIGNALING_PATHWAY"]; exists {
		t.Error("undirected set wrongly classified as pro")
	}
}

func TestSelectApoptosis(t *testing.T) {
	lib, err := ParseGMT(gmtSample)
	if err != nil {
		t.Fatal(err)
	}

	got := SelectApoptosis(lib)
	if len(got) != 3 {
		t.Errorf("expected 3 apoptosis sets, got %d", len(got))
	}
	if _, exists := got["GOBP_REGULATION_OF_MITOPHAGY"]; exists {
		t.Error("mitophagy set should not match")
	}
}

func TestRecords(t *testing.T) {
	lib := Library{
		"SET_B": {"TP53", "BAX", "BAX"},
		"SET_A": {"BCL2"},
	}

	records := Records(lib, "GO_BP", CategoryPro, "Human")

	if len(records) != 3 {
		t.Fatalf("expected 3 records after dedupe, got %d", len(records))
	}

	// Sorted by set name then symbol
	if records[0].GeneSetName != "SET_A" || records[1].GeneSymbol != "BAX" {
		t.Errorf("unexpected ordering: %+v", records)
	}

	syms := UniqueSymbols(records)
	if len(syms) != 3 || syms[0] != "BAX" {
		t.Errorf("unexpected unique symbols: %v", syms)
	}
}
