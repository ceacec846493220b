// sourcebreakdown splits the final apoptotic gene list into per-source
// CSVs (KEGG, Reactome, Hallmark, GO), preserving the consensus categories,
// and writes a breakdown summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/breakdown"
	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/consolidate"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

func main() {
	fmt.Fprintf(os.Stderr, "This sourcebreakdown binary was built at: %s\n", builddate)

	var configPath, resultsDir string

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&resultsDir, "resultsdir", "", "Directory holding final_apoptotic_gene_list.csv; the breakdown is written beneath it. Overrides the run config.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if resultsDir != "" {
		cfg.ResultsDir = resultsDir
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config) error {
	inPath := filepath.Join(cfg.ResultsDir, "final_apoptotic_gene_list.csv")
	genes, err := annotate.ReadGenes(inPath)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(genes), "genes from", inPath)

	outDir := filepath.Join(cfg.ResultsDir, "source_breakdown")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	allStats := make([]breakdown.Stats, 0, len(breakdown.Patterns))

	for _, p := range breakdown.Patterns {
		subset := breakdown.Filter(genes, p.Pattern)
		breakdown.SortByCategory(subset)

		stats := breakdown.Count(p.Name, subset)
		allStats = append(allStats, stats)

		log.Printf("%s: %d genes\n", p.Name, stats.Total)
		for _, category := range consolidate.CategoryOrder {
			log.Printf("  %s: %d\n", category, stats.ByCategory[category])
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("apoptosis_genes_%s.csv", p.Name))
		if err := annotate.WriteGenes(outPath, subset); err != nil {
			return err
		}
		log.Println("  Saved", outPath)
	}

	summaryPath := filepath.Join(outDir, "breakdown_summary.txt")
	summary := breakdown.SummaryReport(allStats, time.Now())
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return err
	}
	log.Println("Summary report saved to", summaryPath)

	fmt.Print(summary)

	return nil
}
