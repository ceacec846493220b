package reconcile

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/orthology"
	"github.com/gocarina/gocsv"
)

// Literature is one curated override: a gene whose direction is settled by
// primary literature rather than database annotation.
type Literature struct {
	HumanSymbol string `csv:"human_symbol"`
	Category    string `csv:"category"`
	Reference   string `csv:"reference"`
}

// ReadLiterature loads the curated override table and indexes it by
// (uppercased) human symbol. Categories outside the known set are rejected
// so a typo cannot silently create a new class.
func ReadLiterature(path string) (map[string]*Literature, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	records := []*Literature{}
	if err := gocsv.UnmarshalBytes(raw, &records); err != nil {
		return nil, pfx.Err(err)
	}

	valid := map[string]bool{
		consolidate.CategoryPro:         true,
		consolidate.CategoryAnti:        true,
		consolidate.CategoryAmbiguous:   true,
		consolidate.CategoryUnspecified: true,
	}

	out := make(map[string]*Literature, len(records))
	for _, rec := range records {
		if !valid[rec.Category] {
			return nil, pfx.Err(fmt.Errorf("literature table: unknown category %q for %s", rec.Category, rec.HumanSymbol))
		}

		rec.HumanSymbol = orthology.NormalizeHuman(rec.HumanSymbol)
		out[rec.HumanSymbol] = rec
	}

	return out, nil
}
