// annotateids attaches Ensembl gene IDs to the consolidated table via
// MyGene.info and writes the final deliverables: the annotated CSV, an xlsx
// copy, and a terminal summary of the category and evidence distributions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/mygene"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

func main() {
	fmt.Fprintf(os.Stderr, "This annotateids binary was built at: %s\n", builddate)

	var configPath, dataDir, resultsDir, mygeneURL string
	var skipXLSX bool

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&dataDir, "datadir", "", "Directory holding consolidated_apoptosis_genes.csv. Overrides the run config.")
	flag.StringVar(&resultsDir, "resultsdir", "", "Output directory for the final deliverables. Overrides the run config.")
	flag.StringVar(&mygeneURL, "mygene", "", "Base URL of the MyGene.info v3 API. Overrides the run config.")
	flag.BoolVar(&skipXLSX, "skipxlsx", false, "Skip writing the xlsx copy of the final list?")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if resultsDir != "" {
		cfg.ResultsDir = resultsDir
	}
	if mygeneURL != "" {
		cfg.MyGeneURL = mygeneURL
	}

	if err := run(cfg, skipXLSX); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config, skipXLSX bool) error {
	inPath := filepath.Join(cfg.DataDir, "consolidated_apoptosis_genes.csv")
	genes, err := consolidate.ReadGenes(inPath)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(genes), "consolidated genes from", inPath)

	client := mygene.NewClient(cfg.MyGeneURL)
	client.BatchSize = annotate.EnsemblBatchSize

	humanSymbols := make([]string, 0, len(genes))
	for _, g := range genes {
		humanSymbols = append(humanSymbols, g.HumanSymbol)
	}

	humanIDs, err := annotate.FetchEnsemblIDs(client, humanSymbols, mygene.TaxidHuman)
	if err != nil {
		return err
	}

	mouseIDs, err := annotate.FetchEnsemblIDs(client, annotate.MouseSymbols(genes), mygene.TaxidMouse)
	if err != nil {
		return err
	}

	final := annotate.Annotate(genes, humanIDs, mouseIDs)

	if err := os.MkdirAll(cfg.ResultsDir, 0o755); err != nil {
		return err
	}

	csvPath := filepath.Join(cfg.ResultsDir, "final_apoptotic_gene_list.csv")
	if err := annotate.WriteGenes(csvPath, final); err != nil {
		return err
	}
	log.Println("Saved final gene list to", csvPath)

	if !skipXLSX {
		xlsxPath := filepath.Join(cfg.ResultsDir, "final_apoptotic_gene_list.xlsx")
		if err := writeXLSX(xlsxPath, final); err != nil {
			return err
		}
		log.Println("Saved xlsx copy to", xlsxPath)
	}

	printCoverage(final)
	printDistributions(final)

	return nil
}

func printCoverage(final []*annotate.Gene) {
	humanWithID, mouseValid, mouseWithID := 0, 0, 0
	for _, g := range final {
		if g.HumanEnsemblID != "" {
			humanWithID++
		}
		if g.MouseSymbol != "" {
			mouseValid++
			if g.MouseEnsemblID != "" {
				mouseWithID++
			}
		}
	}

	fmt.Println("ID MAPPING COVERAGE")
	fmt.Printf("  Human Ensembl IDs: %d/%d (%.1f%%)\n", humanWithID, len(final), 100*float64(humanWithID)/float64(len(final)))
	if mouseValid > 0 {
		fmt.Printf("  Mouse Ensembl IDs: %d/%d (%.1f%%)\n", mouseWithID, mouseValid, 100*float64(mouseWithID)/float64(mouseValid))
	}
}

func printDistributions(final []*annotate.Gene) {
	categoryCounts := make(map[string]int)
	scores := make([]float64, 0, len(final))
	for _, g := range final {
		categoryCounts[g.Category]++
		scores = append(scores, float64(g.EvidenceScore))
	}

	fmt.Println("CATEGORY DISTRIBUTION")
	for _, category := range consolidate.CategoryOrder {
		fmt.Printf("  %-20s: %d\n", category, categoryCounts[category])
	}

	if len(scores) < 2 {
		return
	}

	fmt.Println("EVIDENCE SCORE DISTRIBUTION")
	hist := histogram.Hist(7, scores)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		log.Println("histogram unavailable:", err)
	}
}
