// Package annotate attaches Ensembl gene IDs to the consolidated table and
// defines the final deliverable row format.
package annotate

import (
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/mygene"
	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
)

// EnsemblBatchSize is deliberately smaller than the homologene batch: the
// ensembl.gene field inflates response sizes.
const EnsemblBatchSize = 200

// Gene is one row of the final annotated gene list.
type Gene struct {
	HumanSymbol    string `csv:"human_symbol"`
	HumanEnsemblID string `csv:"human_ensembl_id"`
	MouseSymbol    string `csv:"mouse_symbol"`
	MouseEnsemblID string `csv:"mouse_ensembl_id"`
	Category       string `csv:"category"`
	Sources        string `csv:"sources"`
	EvidenceScore  int    `csv:"evidence_score"`
}

// FetchEnsemblIDs resolves gene symbols to Ensembl gene IDs. When a symbol
// maps to multiple Ensembl genes the first is kept.
func FetchEnsemblIDs(client *mygene.Client, symbols []string, taxid int64) (map[string]string, error) {
	valid := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if strings.TrimSpace(s) != "" {
			valid = append(valid, s)
		}
	}
	valid = lo.Uniq(valid)

	if len(valid) == 0 {
		return map[string]string{}, nil
	}

	hits, err := client.Querymany(valid, "ensembl.gene", taxid)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]string)
	for _, hit := range hits {
		if hit.NotFound {
			continue
		}
		if id := hit.EnsemblGene(); id != "" {
			if _, exists := out[hit.Query]; !exists {
				out[hit.Query] = id
			}
		}
	}

	log.Printf("Mapped %d/%d symbols to Ensembl IDs (taxid %d)\n", len(out), len(valid), taxid)

	return out, nil
}

// Annotate merges Ensembl IDs into the consolidated rows. A row with
// multiple mouse orthologs is annotated with its first ortholog's ID,
// matching the symbol the deliverable lists first.
func Annotate(genes []*consolidate.Gene, humanIDs, mouseIDs map[string]string) []*Gene {
	out := make([]*Gene, 0, len(genes))

	for _, g := range genes {
		firstMouse := g.MouseSymbol
		if i := strings.Index(firstMouse, ","); i >= 0 {
			firstMouse = firstMouse[:i]
		}

		out = append(out, &Gene{
			HumanSymbol:    g.HumanSymbol,
			HumanEnsemblID: humanIDs[g.HumanSymbol],
			MouseSymbol:    g.MouseSymbol,
			MouseEnsemblID: mouseIDs[firstMouse],
			Category:       g.Category,
			Sources:        g.Sources,
			EvidenceScore:  g.EvidenceScore,
		})
	}

	return out
}

// MouseSymbols extracts every individual mouse symbol across the
// consolidated rows, splitting the comma-joined ortholog lists.
func MouseSymbols(genes []*consolidate.Gene) []string {
	out := make([]string, 0, len(genes))
	for _, g := range genes {
		for _, m := range strings.Split(g.MouseSymbol, ",") {
			if m != "" {
				out = append(out, m)
			}
		}
	}

	return lo.Uniq(out)
}

// WriteGenes saves the final annotated list.
func WriteGenes(path string, genes []*Gene) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&genes, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadGenes loads a final annotated list.
func ReadGenes(path string) ([]*Gene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	genes := []*Gene{}
	if err := gocsv.UnmarshalBytes(raw, &genes); err != nil {
		return nil, pfx.Err(err)
	}

	return genes, nil
}
