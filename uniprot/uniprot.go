// Package uniprot queries the UniProtKB search API for reviewed human
// entries and distills their annotations into a directional apoptosis hint
// used during reconciliation.
package uniprot

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carbocation/pfx"
)

// Hint is the directional reading of a gene's UniProt annotation.
type Hint string

const (
	HintPro      Hint = "pro"
	HintAnti     Hint = "anti"
	HintNone     Hint = "none"
	HintConflict Hint = "conflict"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client

	// PauseBetweenQueries throttles per-gene lookups against the public
	// endpoint.
	PauseBetweenQueries time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:             baseURL,
		HTTP:                &http.Client{Timeout: time.Minute},
		PauseBetweenQueries: 200 * time.Millisecond,
	}
}

// Entry is the subset of a UniProtKB record this workflow reads.
type Entry struct {
	PrimaryAccession string `json:"primaryAccession"`
	Keywords         []struct {
		Name string `json:"name"`
	} `json:"keywords"`
	Comments []struct {
		CommentType string `json:"commentType"`
		Texts       []struct {
			Value string `json:"value"`
		} `json:"texts"`
	} `json:"comments"`
}

type searchResponse struct {
	Results []Entry `json:"results"`
}

// Annotation is the evidence collected for one gene.
type Annotation struct {
	Symbol    string
	Accession string
	Hint      Hint
	// Excerpt is the sentence fragment that produced the hint, for the
	// evidence notes in the report.
	Excerpt string
}

// Lookup fetches the reviewed human UniProt entry for a gene symbol and
// classifies its annotation text. Genes with no reviewed entry return a
// HintNone annotation with an empty accession.
func (c *Client) Lookup(symbol string) (*Annotation, error) {
	query := fmt.Sprintf("gene_exact:%s AND organism_id:9606 AND reviewed:true", symbol)

	u := fmt.Sprintf("%s?query=%s&fields=accession,keyword,cc_function&format=json&size=1",
		c.BaseURL, url.QueryEscape(query))

	resp, err := c.HTTP.Get(u)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, pfx.Err(fmt.Errorf("uniprot %s: status %s", symbol, resp.Status))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, pfx.Err(err)
	}

	ann := &Annotation{Symbol: symbol, Hint: HintNone}
	if len(parsed.Results) == 0 {
		return ann, nil
	}

	entry := parsed.Results[0]
	ann.Accession = entry.PrimaryAccession
	ann.Hint, ann.Excerpt = Classify(entry)

	return ann, nil
}

// LookupAll runs Lookup for each symbol, throttled, collecting results by
// symbol. Individual lookup failures are returned as errors keyed to the
// symbol rather than aborting the batch.
func (c *Client) LookupAll(symbols []string) (map[string]*Annotation, map[string]error) {
	out := make(map[string]*Annotation, len(symbols))
	errs := make(map[string]error)

	for i, symbol := range symbols {
		ann, err := c.Lookup(symbol)
		if err != nil {
			errs[symbol] = err
		} else {
			out[symbol] = ann
		}

		if i < len(symbols)-1 && c.PauseBetweenQueries > 0 {
			time.Sleep(c.PauseBetweenQueries)
		}
	}

	return out, errs
}

var proMarkers = []string{
	"pro-apoptotic",
	"proapoptotic",
	"promotes apoptosis",
	"induces apoptosis",
	"accelerates apoptosis",
	"apoptosis activator",
	"positive regulator of apoptosis",
}

var antiMarkers = []string{
	"anti-apoptotic",
	"antiapoptotic",
	"inhibits apoptosis",
	"inhibitor of apoptosis",
	"suppresses apoptosis",
	"prevents apoptosis",
	"negative regulator of apoptosis",
	"apoptosis inhibitor",
}

// Classify reads an entry's keywords and FUNCTION comments and returns the
// directional hint plus the first matching text fragment.
func Classify(entry Entry) (Hint, string) {
	texts := make([]string, 0, 1+len(entry.Keywords))
	for _, kw := range entry.Keywords {
		texts = append(texts, kw.Name)
	}
	for _, c := range entry.Comments {
		if c.CommentType != "FUNCTION" {
			continue
		}
		for _, t := range c.Texts {
			texts = append(texts, t.Value)
		}
	}

	var proHit, antiHit string
	for _, text := range texts {
		lower := strings.ToLower(text)
		if proHit == "" {
			for _, marker := range proMarkers {
				if strings.Contains(lower, marker) {
					proHit = excerpt(text, lower, marker)
					break
				}
			}
		}
		if antiHit == "" {
			for _, marker := range antiMarkers {
				if strings.Contains(lower, marker) {
					antiHit = excerpt(text, lower, marker)
					break
				}
			}
		}
	}

	switch {
	case proHit != "" && antiHit != "":
		return HintConflict, proHit
	case proHit != "":
		return HintPro, proHit
	case antiHit != "":
		return HintAnti, antiHit
	}

	return HintNone, ""
}

// excerpt returns a short window of the original text around the marker.
func excerpt(text, lower, marker string) string {
	const window = 60

	i := strings.Index(lower, marker)
	start := i - window/2
	if start < 0 {
		start = 0
	}
	end := i + len(marker) + window/2
	if end > len(text) {
		end = len(text)
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out = out + "..."
	}

	return out
}
