// Package mygene is a minimal client for the MyGene.info v3 batch
// endpoints, covering only the lookups this workflow performs: symbol
// queries with homologene or Ensembl fields, and Entrez ID to symbol
// resolution.
package mygene

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carbocation/pfx"
)

// NCBI taxonomy IDs for the two organisms this dataset covers.
const (
	TaxidHuman = 9606
	TaxidMouse = 10090
)

// QueryBatchSize matches the MyGene.info recommended POST batch limit used
// by the homologene lookups. The Ensembl annotation pass uses a smaller
// batch, set via Client.BatchSize.
const QueryBatchSize = 500

type Client struct {
	BaseURL   string
	HTTP      *http.Client
	BatchSize int

	// PauseBetweenBatches throttles consecutive batch POSTs to stay polite
	// to the public endpoint.
	PauseBetweenBatches time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:             strings.TrimSuffix(baseURL, "/"),
		HTTP:                &http.Client{Timeout: 2 * time.Minute},
		BatchSize:           QueryBatchSize,
		PauseBetweenBatches: 500 * time.Millisecond,
	}
}

func (c *Client) batchSize() int {
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return QueryBatchSize
}

// Hit is one result object from a MyGene.info batch response.
type Hit struct {
	Query      string          `json:"query"`
	ID         string          `json:"_id"`
	NotFound   bool            `json:"notfound"`
	Symbol     string          `json:"symbol"`
	Homologene *Homologene     `json:"homologene"`
	Ensembl    json.RawMessage `json:"ensembl"`
}

// Homologene is a cross-species gene cluster: each entry of Genes is a
// [taxid, entrezID] pair.
type Homologene struct {
	ID    int64     `json:"id"`
	Genes [][]int64 `json:"genes"`
}

// TargetEntrez returns the Entrez IDs in the cluster belonging to taxid.
func (h *Homologene) TargetEntrez(taxid int64) []int64 {
	if h == nil {
		return nil
	}

	out := make([]int64, 0)
	for _, pair := range h.Genes {
		if len(pair) >= 2 && pair[0] == taxid {
			out = append(out, pair[1])
		}
	}

	return out
}

// EnsemblGene returns the first Ensembl gene ID on the hit. MyGene.info
// emits either an object or a list of objects for the ensembl field.
func (h Hit) EnsemblGene() string {
	if len(h.Ensembl) == 0 {
		return ""
	}

	type ensembl struct {
		Gene string `json:"gene"`
	}

	var one ensembl
	if err := json.Unmarshal(h.Ensembl, &one); err == nil && one.Gene != "" {
		return one.Gene
	}

	var many []ensembl
	if err := json.Unmarshal(h.Ensembl, &many); err == nil && len(many) > 0 {
		return many[0].Gene
	}

	return ""
}

// Querymany POSTs symbol queries in batches and concatenates the hits,
// mirroring the querymany semantics of the upstream service: one or more
// hits per query, with notfound markers for misses.
func (c *Client) Querymany(symbols []string, fields string, taxid int64) ([]Hit, error) {
	all := make([]Hit, 0, len(symbols))

	for i := 0; i < len(symbols); i += c.batchSize() {
		end := i + c.batchSize()
		if end > len(symbols) {
			end = len(symbols)
		}

		form := url.Values{}
		form.Set("q", strings.Join(symbols[i:end], ","))
		form.Set("scopes", "symbol")
		form.Set("fields", fields)
		form.Set("species", strconv.FormatInt(taxid, 10))

		hits, err := c.post("/query", form)
		if err != nil {
			return nil, pfx.Err(err)
		}
		all = append(all, hits...)

		if end < len(symbols) && c.PauseBetweenBatches > 0 {
			time.Sleep(c.PauseBetweenBatches)
		}
	}

	return all, nil
}

// GetGenes resolves Entrez IDs to annotation hits in batches.
func (c *Client) GetGenes(entrezIDs []int64, fields string, taxid int64) ([]Hit, error) {
	all := make([]Hit, 0, len(entrezIDs))

	for i := 0; i < len(entrezIDs); i += c.batchSize() {
		end := i + c.batchSize()
		if end > len(entrezIDs) {
			end = len(entrezIDs)
		}

		ids := make([]string, 0, end-i)
		for _, id := range entrezIDs[i:end] {
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		form := url.Values{}
		form.Set("ids", strings.Join(ids, ","))
		form.Set("fields", fields)
		form.Set("species", strconv.FormatInt(taxid, 10))

		hits, err := c.post("/gene", form)
		if err != nil {
			return nil, pfx.Err(err)
		}
		all = append(all, hits...)

		if end < len(entrezIDs) && c.PauseBetweenBatches > 0 {
			time.Sleep(c.PauseBetweenBatches)
		}
	}

	return all, nil
}

func (c *Client) post(path string, form url.Values) ([]Hit, error) {
	resp, err := c.HTTP.PostForm(c.BaseURL+path, form)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, pfx.Err(fmt.Errorf("mygene %s: status %s: %s", path, resp.Status, truncate(body)))
	}

	hits := []Hit{}
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, pfx.Err(err)
	}

	return hits, nil
}

func truncate(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
