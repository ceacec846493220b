// consolidategenes merges the raw per-source gene sets into the master
// apoptosis gene table, mapping mouse genes through the ortholog table and
// assigning consensus categories.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	apoptosisatlas "github.com/cellfate/apoptosisatlas"
	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/geneset"
	"github.com/cellfate/apoptosisatlas/orthology"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

// sourceFiles maps the canonical source names to their raw_data filenames.
var sourceFiles = map[string]string{
	consolidate.SourceGOProHuman:  "human_go_pro.csv",
	consolidate.SourceGOAntiHuman: "human_go_anti.csv",
	consolidate.SourceGOProMouse:  "mouse_go_pro.csv",
	consolidate.SourceGOAntiMouse: "mouse_go_anti.csv",
	consolidate.SourceKEGG:        "human_kegg_apoptosis.csv",
	consolidate.SourceReactome:    "human_reactome_apoptosis.csv",
	consolidate.SourceHallmark:    "human_hallmark_apoptosis.csv",
}

func main() {
	fmt.Fprintf(os.Stderr, "This consolidategenes binary was built at: %s\n", builddate)

	var configPath, rawDir, dataDir string

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&rawDir, "rawdir", "", "Directory holding the raw_data CSVs. Overrides the run config.")
	flag.StringVar(&dataDir, "datadir", "", "Directory holding the orthology mapping; also receives the outputs. Overrides the run config.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if rawDir != "" {
		cfg.RawDataDir = rawDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config) error {
	mappingPath := filepath.Join(cfg.DataDir, "orthology_mapping.csv")
	simple, err := orthology.ReadSimple(mappingPath)
	if err != nil {
		return fmt.Errorf("orthology mapping %s: %w", mappingPath, err)
	}
	log.Println("Loaded", len(simple), "ortholog pairs from", mappingPath)

	table := orthology.NewTable(simple)
	log.Println("Human genes with orthologs:", len(table.HumanToMouse))
	log.Println("Mouse genes mapped to human:", len(table.MouseToHuman))

	sources := make(map[string][]string, len(sourceFiles))
	for sourceName, filename := range sourceFiles {
		path := filepath.Join(cfg.RawDataDir, filename)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Println("Warning: source file not found:", path)
			sources[sourceName] = nil
			continue
		}

		records, err := geneset.ReadRecords(apoptosisatlas.OpenFileOrURL, path)
		if err != nil {
			return err
		}

		symbols := geneset.UniqueSymbols(records)
		sources[sourceName] = symbols
		log.Printf("  %s: %d unique genes\n", sourceName, len(symbols))
	}

	genes := consolidate.Consolidate(table, sources)
	log.Println("Total consolidated genes:", len(genes))

	outPath := filepath.Join(cfg.DataDir, "consolidated_apoptosis_genes.csv")
	if err := consolidate.WriteGenes(outPath, genes); err != nil {
		return err
	}
	log.Println("Saved consolidated table to", outPath)

	summaryPath := filepath.Join(cfg.DataDir, "gene_category_summary.txt")
	if err := consolidate.WriteSummary(summaryPath, genes); err != nil {
		return err
	}

	fmt.Print(consolidate.Summary(genes))
	log.Println("Summary saved to", summaryPath)

	return nil
}
