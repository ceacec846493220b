// Package consolidate merges the per-source apoptosis gene sets into one
// master table, resolving mouse genes through the ortholog mapping and
// assigning each human gene a functional category from the direction of its
// evidence.
package consolidate

import (
	"log"
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/orthology"
	"github.com/gocarina/gocsv"
)

// Canonical source names. The four GO sources carry a direction; the three
// pathway sources do not.
const (
	SourceGOProHuman  = "GO_Pro_Human"
	SourceGOAntiHuman = "GO_Anti_Human"
	SourceGOProMouse  = "GO_Pro_Mouse"
	SourceGOAntiMouse = "GO_Anti_Mouse"
	SourceKEGG        = "KEGG"
	SourceReactome    = "Reactome"
	SourceHallmark    = "Hallmark"
)

// Functional categories, in the fixed presentation order used by every
// downstream report.
const (
	CategoryPro         = "Pro-apoptotic"
	CategoryAnti        = "Anti-apoptotic"
	CategoryAmbiguous   = "Ambiguous"
	CategoryUnspecified = "Unspecified"
)

// CategoryOrder is the fixed ordering of categories in reports and sorted
// outputs.
var CategoryOrder = []string{CategoryPro, CategoryAnti, CategoryAmbiguous, CategoryUnspecified}

// Gene is one consolidated row: a human gene, its mouse orthologs, its
// consensus category, and the sources asserting it.
type Gene struct {
	HumanSymbol   string `csv:"human_symbol"`
	MouseSymbol   string `csv:"mouse_symbol"`
	Category      string `csv:"category"`
	Sources       string `csv:"sources"`
	EvidenceScore int    `csv:"evidence_score"`
}

// HasSource reports whether the row's evidence includes the named source.
// GO matches any GO_-prefixed source.
func (g Gene) HasSource(pattern string) bool {
	for _, s := range strings.Split(g.Sources, ",") {
		if strings.HasPrefix(s, pattern) {
			return true
		}
	}
	return false
}

type evidence struct {
	pro          map[string]bool
	anti         map[string]bool
	general      map[string]bool
	mouseSymbols map[string]bool
}

func newEvidence() *evidence {
	return &evidence{
		pro:          make(map[string]bool),
		anti:         make(map[string]bool),
		general:      make(map[string]bool),
		mouseSymbols: make(map[string]bool),
	}
}

// Consolidate merges the source gene sets into the master table. Human
// sources key directly on their (uppercased) symbols; mouse sources are
// mapped through the ortholog table and genes without a human ortholog are
// dropped (counted in the log).
func Consolidate(table orthology.Table, sources map[string][]string) []*Gene {
	byGene := make(map[string]*evidence)

	get := func(humanSymbol string) *evidence {
		ev, exists := byGene[humanSymbol]
		if !exists {
			ev = newEvidence()
			byGene[humanSymbol] = ev
		}
		return ev
	}

	addHuman := func(sourceName string, direction string) {
		for _, gene := range sources[sourceName] {
			gene = orthology.NormalizeHuman(gene)
			if gene == "" {
				continue
			}

			ev := get(gene)
			switch direction {
			case "pro":
				ev.pro[sourceName] = true
			case "anti":
				ev.anti[sourceName] = true
			default:
				ev.general[sourceName] = true
			}

			for _, mouse := range table.HumanToMouse[gene] {
				ev.mouseSymbols[mouse] = true
			}
		}
	}

	addMouse := func(sourceName string, direction string) {
		mapped, unmapped := 0, 0
		for _, mouseGene := range sources[sourceName] {
			humanGene, exists := table.MouseToHuman[mouseGene]
			if !exists {
				unmapped++
				continue
			}
			mapped++

			ev := get(humanGene)
			if direction == "pro" {
				ev.pro[sourceName] = true
			} else {
				ev.anti[sourceName] = true
			}
			ev.mouseSymbols[mouseGene] = true
		}
		log.Printf("%s: mapped %d genes to human, %d unmapped\n", sourceName, mapped, unmapped)
	}

	addHuman(SourceGOProHuman, "pro")
	addHuman(SourceGOAntiHuman, "anti")
	addMouse(SourceGOProMouse, "pro")
	addMouse(SourceGOAntiMouse, "anti")
	addHuman(SourceKEGG, "general")
	addHuman(SourceReactome, "general")
	addHuman(SourceHallmark, "general")

	out := make([]*Gene, 0, len(byGene))
	for humanSymbol, ev := range byGene {
		out = append(out, buildGene(humanSymbol, ev))
	}

	// Evidence score descending, then symbol ascending.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EvidenceScore != out[j].EvidenceScore {
			return out[i].EvidenceScore > out[j].EvidenceScore
		}
		return out[i].HumanSymbol < out[j].HumanSymbol
	})

	return out
}

func buildGene(humanSymbol string, ev *evidence) *Gene {
	var category string
	switch {
	case len(ev.pro) > 0 && len(ev.anti) > 0:
		category = CategoryAmbiguous
	case len(ev.pro) > 0:
		category = CategoryPro
	case len(ev.anti) > 0:
		category = CategoryAnti
	default:
		category = CategoryUnspecified
	}

	allSources := make([]string, 0, len(ev.pro)+len(ev.anti)+len(ev.general))
	for s := range ev.pro {
		allSources = append(allSources, s)
	}
	for s := range ev.anti {
		allSources = append(allSources, s)
	}
	for s := range ev.general {
		allSources = append(allSources, s)
	}
	sort.Strings(allSources)

	mouse := make([]string, 0, len(ev.mouseSymbols))
	for m := range ev.mouseSymbols {
		mouse = append(mouse, m)
	}
	sort.Strings(mouse)

	return &Gene{
		HumanSymbol:   humanSymbol,
		MouseSymbol:   strings.Join(mouse, ","),
		Category:      category,
		Sources:       strings.Join(allSources, ","),
		EvidenceScore: len(allSources),
	}
}

// WriteGenes saves the consolidated table.
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

// ReadGenes loads a consolidated table.
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
