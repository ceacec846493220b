package mygene

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTargetEntrez(t *testing.T) {
	h := &Homologene{
		ID: 7242,
		Genes: [][]int64{
			{9606, 581},
			{10090, 12028},
			{10116, 24887},
		},
	}

	mouse := h.TargetEntrez(TaxidMouse)
	if len(mouse) != 1 || mouse[0] != 12028 {
		t.Errorf("unexpected mouse IDs: %v", mouse)
	}

	if got := h.TargetEntrez(7227); len(got) != 0 {
		t.Errorf("expected no hits for fly taxid, got %v", got)
	}
}

func TestEnsemblGeneShapes(t *testing.T) {
	var object Hit
	if err := json.Unmarshal([]byte(`{"query":"BAX","ensembl":{"gene":"ENSG00000087088"}}`), &object); err != nil {
		t.Fatal(err)
	}
	if got := object.EnsemblGene(); got != "ENSG00000087088" {
		t.Errorf("object form: got %q", got)
	}

	var list Hit
	if err := json.Unmarshal([]byte(`{"query":"CFLAR","ensembl":[{"gene":"ENSG00000003402"},{"gene":"ENSG00000282251"}]}`), &list); err != nil {
		t.Fatal(err)
	}
	if got := list.EnsemblGene(); got != "ENSG00000003402" {
		t.Errorf("list form: got %q", got)
	}

	var missing Hit
	if got := missing.EnsemblGene(); got != "" {
		t.Errorf("missing form: got %q", got)
	}
}

func TestQuerymany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.Form.Get("scopes"); got != "symbol" {
			t.Errorf("scopes = %q", got)
		}

		w.Write([]byte(`[
			{"query":"BAX","_id":"581","symbol":"BAX","homologene":{"id":7242,"genes":[[9606,581],[10090,12028]]}},
			{"query":"NOTAGENE","notfound":true}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.PauseBetweenBatches = 0

	hits, err := c.Querymany([]string{"BAX", "NOTAGENE"}, "symbol,homologene", TaxidHuman)
	if err != nil {
		t.Fatal(err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Symbol != "BAX" || hits[1].NotFound != true {
		t.Errorf("unexpected hits: %+v", hits)
	}

	mouse := hits[0].Homologene.TargetEntrez(TaxidMouse)
	if len(mouse) != 1 || mouse[0] != 12028 {
		t.Errorf("unexpected ortholog IDs: %v", mouse)
	}
}

func TestGetGenes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gene" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"query":"12028","_id":"12028","symbol":"Bax"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.PauseBetweenBatches = 0

	hits, err := c.GetGenes([]int64{12028}, "symbol", TaxidMouse)
	if err != nil {
		t.Fatal(err)
	}

	if len(hits) != 1 || hits[0].Symbol != "Bax" {
		t.Errorf("unexpected hits: %+v", hits)
	}
}
