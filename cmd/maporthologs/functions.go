package main

import (
	"log"
	"path/filepath"
	"strings"

	apoptosisatlas "github.com/cellfate/apoptosisatlas"
	"github.com/cellfate/apoptosisatlas/geneset"
	"github.com/samber/lo"
)

// LoadGeneSymbols reads every CSV under dir and returns the unique human
// and mouse gene symbols. Each record's organism column decides its side;
// files without usable organism values fall back to filename inference.
func LoadGeneSymbols(dir string) (human, mouse []string, err error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, nil, err
	}

	log.Println("Loading gene symbols from", len(paths), "CSV files in", dir)

	humanSet := make([]string, 0)
	mouseSet := make([]string, 0)

	for _, path := range paths {
		records, err := geneset.ReadRecords(apoptosisatlas.OpenFileOrURL, path)
		if err != nil {
			return nil, nil, err
		}

		name := strings.ToLower(filepath.Base(path))
		nHuman, nMouse := 0, 0

		for _, rec := range records {
			symbol := strings.TrimSpace(rec.GeneSymbol)
			if symbol == "" {
				continue
			}

			organism := strings.ToLower(rec.Organism)
			if organism == "" {
				// Infer from filename when the column is absent.
				switch {
				case strings.Contains(name, "human"):
					organism = "human"
				case strings.Contains(name, "mouse"):
					organism = "mouse"
				}
			}

			switch organism {
			case "human":
				humanSet = append(humanSet, symbol)
				nHuman++
			case "mouse":
				mouseSet = append(mouseSet, symbol)
				nMouse++
			default:
				log.Printf("  Warning: cannot determine organism for %s in %s\n", symbol, name)
			}
		}

		log.Printf("  %s: %d human, %d mouse entries\n", name, nHuman, nMouse)
	}

	return lo.Uniq(humanSet), lo.Uniq(mouseSet), nil
}
