package orthology

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cellfate/apoptosisatlas/mygene"
)

func TestDedupeAndSimplify(t *testing.T) {
	id := int64(12028)
	pairs := []*Pair{
		{HumanSymbol: "TP53", MouseSymbol: "Trp53", MappingSource: "human_to_mouse"},
		{HumanSymbol: "BAX", MouseSymbol: "Bax", MouseEntrez: &id, MappingSource: "human_to_mouse"},
		{HumanSymbol: "BAX", MouseSymbol: "Bax", MappingSource: "mouse_to_human"},
	}

	deduped := Dedupe(pairs)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 pairs after dedupe, got %d", len(deduped))
	}

	// Sorted by human symbol; first record wins the dedupe
	if deduped[0].HumanSymbol != "BAX" || deduped[0].MappingSource != "human_to_mouse" {
		t.Errorf("unexpected first pair: %+v", deduped[0])
	}
	if deduped[0].MouseEntrez == nil || *deduped[0].MouseEntrez != 12028 {
		t.Error("dedupe dropped the kept record's entrez ID")
	}

	simple := Simplify(deduped)
	if len(simple) != 2 || simple[1].MouseSymbol != "Trp53" {
		t.Errorf("unexpected simplified pairs: %+v", simple)
	}
}

func TestNewTable(t *testing.T) {
	pairs := []*SimplePair{
		{HumanSymbol: "CFLAR", MouseSymbol: "Cflar"},
		{HumanSymbol: "BCL2L1", MouseSymbol: "Bcl2l1"},
		{HumanSymbol: "BCL2L1", MouseSymbol: "Bcl2l10"},
	}

	table := NewTable(pairs)

	if got := table.HumanToMouse["BCL2L1"]; len(got) != 2 {
		t.Errorf("expected one-to-many mapping, got %v", got)
	}
	if table.MouseToHuman["Cflar"] != "CFLAR" {
		t.Errorf("unexpected reverse mapping: %v", table.MouseToHuman)
	}
}

func TestBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}

		switch r.URL.Path {
		case "/query":
			switch r.Form.Get("species") {
			case "9606":
				w.Write([]byte(`[{"query":"BAX","symbol":"BAX","homologene":{"id":7242,"genes":[[9606,581],[10090,12028]]}}]`))
			default:
				w.Write([]byte(`[{"query":"Trp53","symbol":"Trp53","homologene":{"id":460,"genes":[[9606,7157],[10090,22059]]}}]`))
			}
		case "/gene":
			switch r.Form.Get("species") {
			case "10090":
				w.Write([]byte(`[{"query":"12028","symbol":"Bax"}]`))
			default:
				w.Write([]byte(`[{"query":"7157","symbol":"TP53"}]`))
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := mygene.NewClient(srv.URL)
	client.PauseBetweenBatches = 0

	pairs, err := Build(client, []string{"BAX"}, []string{"Trp53"})
	if err != nil {
		t.Fatal(err)
	}

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	if pairs[0].HumanSymbol != "BAX" || pairs[0].MouseSymbol != "Bax" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
	if pairs[1].HumanSymbol != "TP53" || pairs[1].MappingSource != "mouse_to_human" {
		t.Errorf("unexpected pair: %+v", pairs[1])
	}
	if pairs[1].HumanEntrez == nil || *pairs[1].HumanEntrez != 7157 {
		t.Error("mouse_to_human pair missing human entrez")
	}
}
