package annotate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/mygene"
)

func TestFetchEnsemblIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"query":"BAX","ensembl":{"gene":"ENSG00000087088"}},
			{"query":"CFLAR","ensembl":[{"gene":"ENSG00000003402"},{"gene":"ENSG00000282251"}]},
			{"query":"FAKE1","notfound":true}
		]`))
	}))
	defer srv.Close()

	client := mygene.NewClient(srv.URL)
	client.PauseBetweenBatches = 0
	client.BatchSize = EnsemblBatchSize

	// Empty and duplicate symbols must be tolerated.
	ids, err := FetchEnsemblIDs(client, []string{"BAX", "", "BAX", "CFLAR", "FAKE1"}, mygene.TaxidHuman)
	if err != nil {
		t.Fatal(err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 mappings, got %d: %v", len(ids), ids)
	}
	if ids["BAX"] != "ENSG00000087088" {
		t.Errorf("BAX = %q", ids["BAX"])
	}
	if ids["CFLAR"] != "ENSG00000003402" {
		t.Errorf("CFLAR should take the first listed gene, got %q", ids["CFLAR"])
	}
}

func TestAnnotate(t *testing.T) {
	genes := []*consolidate.Gene{
		{HumanSymbol: "BCL2L1", MouseSymbol: "Bcl2l1,Bcl2l10", Category: consolidate.CategoryAnti, Sources: "GO_Anti_Human", EvidenceScore: 1},
		{HumanSymbol: "CASP3", MouseSymbol: "", Category: consolidate.CategoryUnspecified, Sources: "KEGG", EvidenceScore: 1},
	}

	humanIDs := map[string]string{"BCL2L1": "ENSG00000171552"}
	mouseIDs := map[string]string{"Bcl2l1": "ENSMUSG00000007659"}

	out := Annotate(genes, humanIDs, mouseIDs)

	if out[0].HumanEnsemblID != "ENSG00000171552" {
		t.Errorf("human ID = %q", out[0].HumanEnsemblID)
	}
	if out[0].MouseEnsemblID != "ENSMUSG00000007659" {
		t.Errorf("mouse ID should come from the first ortholog, got %q", out[0].MouseEnsemblID)
	}
	if out[1].HumanEnsemblID != "" || out[1].MouseEnsemblID != "" {
		t.Errorf("unannotated gene should keep empty IDs: %+v", out[1])
	}
}

func TestMouseSymbols(t *testing.T) {
	genes := []*consolidate.Gene{
		{HumanSymbol: "BCL2L1", MouseSymbol: "Bcl2l1,Bcl2l10"},
		{HumanSymbol: "BAX", MouseSymbol: "Bax"},
		{HumanSymbol: "CASP3", MouseSymbol: ""},
		{HumanSymbol: "BAK1", MouseSymbol: "Bax"}, // duplicate ortholog
	}

	syms := MouseSymbols(genes)
	if len(syms) != 3 {
		t.Errorf("expected 3 unique mouse symbols, got %v", syms)
	}
}
