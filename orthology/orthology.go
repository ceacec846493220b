// Package orthology builds and serves the human/mouse ortholog mapping that
// anchors cross-species consolidation.
package orthology

import (
	"os"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Pair is one ortholog correspondence. Entrez IDs are nullable: each lookup
// direction only learns the target-side ID.
type Pair struct {
	HumanSymbol   string `csv:"human_symbol"`
	MouseSymbol   string `csv:"mouse_symbol"`
	HumanEntrez   *int64 `csv:"human_entrez"`
	MouseEntrez   *int64 `csv:"mouse_entrez"`
	MappingSource string `csv:"mapping_source"`
}

// SimplePair is the two-column deliverable form of the mapping.
type SimplePair struct {
	HumanSymbol string `csv:"human_symbol"`
	MouseSymbol string `csv:"mouse_symbol"`
}

// Dedupe removes duplicate (human, mouse) pairs, keeping the first record,
// and sorts by human then mouse symbol.
func Dedupe(pairs []*Pair) []*Pair {
	seen := make(map[string]bool)
	out := make([]*Pair, 0, len(pairs))

	for _, p := range pairs {
		key := p.HumanSymbol + "\t" + p.MouseSymbol
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HumanSymbol != out[j].HumanSymbol {
			return out[i].HumanSymbol < out[j].HumanSymbol
		}
		return out[i].MouseSymbol < out[j].MouseSymbol
	})

	return out
}

// Simplify reduces pairs to the distinct two-column form, preserving order.
func Simplify(pairs []*Pair) []*SimplePair {
	seen := make(map[string]bool)
	out := make([]*SimplePair, 0, len(pairs))

	for _, p := range pairs {
		key := p.HumanSymbol + "\t" + p.MouseSymbol
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, &SimplePair{HumanSymbol: p.HumanSymbol, MouseSymbol: p.MouseSymbol})
	}

	return out
}

// Table is the bidirectional lookup view of the mapping. Human-to-mouse may
// be one-to-many; mouse-to-human keeps a single human symbol per mouse gene
// (first wins), which is how the consolidation step consumes it.
type Table struct {
	HumanToMouse map[string][]string
	MouseToHuman map[string]string
}

func NewTable(pairs []*SimplePair) Table {
	t := Table{
		HumanToMouse: make(map[string][]string),
		MouseToHuman: make(map[string]string),
	}

	for _, p := range pairs {
		t.HumanToMouse[p.HumanSymbol] = append(t.HumanToMouse[p.HumanSymbol], p.MouseSymbol)
		if _, exists := t.MouseToHuman[p.MouseSymbol]; !exists {
			t.MouseToHuman[p.MouseSymbol] = p.HumanSymbol
		}
	}

	return t
}

// WritePairs saves the full mapping CSV.
func WritePairs(path string, pairs []*Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&pairs, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteSimple saves the two-column mapping CSV.
func WriteSimple(path string, pairs []*SimplePair) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&pairs, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadSimple loads the two-column mapping CSV.
func ReadSimple(path string) ([]*SimplePair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	pairs := []*SimplePair{}
	if err := gocsv.UnmarshalBytes(raw, &pairs); err != nil {
		return nil, pfx.Err(err)
	}

	return pairs, nil
}

// NormalizeHuman uppercases a human symbol the way every human-side join in
// this workflow does.
func NormalizeHuman(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
