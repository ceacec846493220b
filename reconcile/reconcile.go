// Package reconcile resolves Ambiguous and Unspecified genes in the final
// apoptotic gene list against external functional evidence: DepMap CRISPR
// fitness profiles, drug-sensitivity correlations, UniProt annotations, and
// a curated literature table.
package reconcile

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/depmap"
	"github.com/cellfate/apoptosisatlas/uniprot"
	"github.com/gocarina/gocsv"
)

// Confidence labels for the final classification.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Gene is one row of the reconciled deliverable: the annotated row plus the
// final call and its provenance.
type Gene struct {
	HumanSymbol    string `csv:"human_symbol"`
	HumanEnsemblID string `csv:"human_ensembl_id"`
	MouseSymbol    string `csv:"mouse_symbol"`
	MouseEnsemblID string `csv:"mouse_ensembl_id"`
	Category       string `csv:"category"`
	Sources        string `csv:"sources"`
	EvidenceScore  int    `csv:"evidence_score"`
	FinalCategory  string `csv:"final_category"`
	Confidence     string `csv:"confidence"`
	EvidenceNotes  string `csv:"evidence_notes"`
}

// Reassigned reports whether reconciliation changed the category.
func (g Gene) Reassigned() bool {
	return g.FinalCategory != g.Category
}

// Evidence bundles the external datasets consulted during reconciliation.
// Any member may be nil/empty; absent evidence simply abstains.
type Evidence struct {
	Fitness    map[string]*depmap.GeneSummary
	DrugCorrs  map[string][]*depmap.DrugCorrelation
	UniProt    map[string]*uniprot.Annotation
	Literature map[string]*Literature
}

// GroupCorrelations indexes drug correlations by gene symbol.
func GroupCorrelations(corrs []*depmap.DrugCorrelation) map[string][]*depmap.DrugCorrelation {
	out := make(map[string][]*depmap.DrugCorrelation)
	for _, c := range corrs {
		out[c.Symbol] = append(out[c.Symbol], c)
	}
	return out
}

// vote is one directional opinion from an external dataset.
type vote struct {
	category string
	note     string
}

// Reconcile applies the evidence rules to every gene. Pro- and
// Anti-apoptotic calls from consolidation are kept; Ambiguous and
// Unspecified genes are reconsidered.
func Reconcile(genes []*annotate.Gene, ev Evidence) []*Gene {
	out := make([]*Gene, 0, len(genes))

	for _, g := range genes {
		out = append(out, reconcileOne(g, ev))
	}

	return out
}

func reconcileOne(g *annotate.Gene, ev Evidence) *Gene {
	r := &Gene{
		HumanSymbol:    g.HumanSymbol,
		HumanEnsemblID: g.HumanEnsemblID,
		MouseSymbol:    g.MouseSymbol,
		MouseEnsemblID: g.MouseEnsemblID,
		Category:       g.Category,
		Sources:        g.Sources,
		EvidenceScore:  g.EvidenceScore,
		FinalCategory:  g.Category,
	}

	// Settled categories keep their call; confidence reflects breadth of
	// source support.
	if g.Category == consolidate.CategoryPro || g.Category == consolidate.CategoryAnti {
		r.Confidence = ConfidenceMedium
		if g.EvidenceScore >= 2 {
			r.Confidence = ConfidenceHigh
		}
		r.EvidenceNotes = fmt.Sprintf("retained from %d consolidation source(s)", g.EvidenceScore)
		return r
	}

	// Literature wins outright.
	if lit, exists := ev.Literature[g.HumanSymbol]; exists {
		r.FinalCategory = lit.Category
		r.Confidence = ConfidenceHigh
		r.EvidenceNotes = "literature: " + lit.Reference
		return r
	}

	votes := collectVotes(g.HumanSymbol, ev)

	notes := make([]string, 0, len(votes))
	categories := make(map[string]int)
	for _, v := range votes {
		notes = append(notes, v.note)
		categories[v.category]++
	}

	switch {
	case len(categories) == 1 && len(votes) > 0:
		for category := range categories {
			r.FinalCategory = category
		}
		r.Confidence = ConfidenceMedium
		if len(votes) >= 2 {
			r.Confidence = ConfidenceHigh
		}
	case len(categories) > 1:
		// Split external evidence: the gene stays (or becomes) Ambiguous.
		r.FinalCategory = consolidate.CategoryAmbiguous
		r.Confidence = ConfidenceLow
		notes = append(notes, "external evidence split")
	default:
		r.Confidence = ConfidenceLow
		notes = append(notes, "no external evidence")
	}

	r.EvidenceNotes = strings.Join(notes, "; ")

	return r
}

// collectVotes gathers the non-abstaining directional opinions for a gene.
func collectVotes(symbol string, ev Evidence) []vote {
	votes := make([]vote, 0, 3)

	if ann, exists := ev.UniProt[symbol]; exists {
		switch ann.Hint {
		case uniprot.HintPro:
			votes = append(votes, vote{
				category: consolidate.CategoryPro,
				note:     fmt.Sprintf("uniprot %s: %s", ann.Accession, ann.Excerpt),
			})
		case uniprot.HintAnti:
			votes = append(votes, vote{
				category: consolidate.CategoryAnti,
				note:     fmt.Sprintf("uniprot %s: %s", ann.Accession, ann.Excerpt),
			})
		}
	}

	// Knockout of a pro-survival (anti-apoptotic) gene costs fitness;
	// knockout of a pro-apoptotic gene can relieve it.
	if fit, exists := ev.Fitness[symbol]; exists {
		switch fit.Call {
		case depmap.CallEssential:
			votes = append(votes, vote{
				category: consolidate.CategoryAnti,
				note:     fmt.Sprintf("depmap: essential (mean chronos %.2f, %.0f%% dependent lines)", fit.MeanChronos, 100*fit.FracDependent),
			})
		case depmap.CallFitnessSuppressive:
			votes = append(votes, vote{
				category: consolidate.CategoryPro,
				note:     fmt.Sprintf("depmap: knockout growth-promoting (mean chronos %.2f)", fit.MeanChronos),
			})
		}
	}

	// The strongest drug correlation votes with its sign: dependency
	// tracking drug sensitivity (negative r against AUC) marks a
	// pro-survival gene.
	if corrs := ev.DrugCorrs[symbol]; len(corrs) > 0 {
		best := corrs[0]
		for _, c := range corrs[1:] {
			if math.Abs(c.Pearson) > math.Abs(best.Pearson) {
				best = c
			}
		}

		category := consolidate.CategoryPro
		if best.Pearson < 0 {
			category = consolidate.CategoryAnti
		}
		votes = append(votes, vote{
			category: category,
			note:     fmt.Sprintf("drug: %s (r=%.2f, n=%d)", best.Drug, best.Pearson, best.NShared),
		})
	}

	return votes
}

// WriteGenes saves the reconciled list.
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

// SortForOutput orders reconciled rows by category (fixed order) then
// symbol.
func SortForOutput(genes []*Gene) {
	rank := make(map[string]int, len(consolidate.CategoryOrder))
	for i, c := range consolidate.CategoryOrder {
		rank[c] = i
	}

	sort.SliceStable(genes, func(i, j int) bool {
		ri, rj := rank[genes[i].FinalCategory], rank[genes[j].FinalCategory]
		if ri != rj {
			return ri < rj
		}
		return genes[i].HumanSymbol < genes[j].HumanSymbol
	})
}
