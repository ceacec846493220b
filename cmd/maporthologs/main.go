// maporthologs builds the human/mouse ortholog mapping for every gene in
// the raw_data CSVs, using MyGene.info homologene clusters in both
// directions, and writes the full and simplified mapping CSVs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/mygene"
	"github.com/cellfate/apoptosisatlas/orthology"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

func main() {
	fmt.Fprintf(os.Stderr, "This maporthologs binary was built at: %s\n", builddate)

	var configPath, rawDir, outDir, mygeneURL string

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&rawDir, "rawdir", "", "Directory holding the raw_data CSVs. Overrides the run config.")
	flag.StringVar(&outDir, "outdir", "", "Output directory for the mapping CSVs. Overrides the run config.")
	flag.StringVar(&mygeneURL, "mygene", "", "Base URL of the MyGene.info v3 API. Overrides the run config.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if rawDir != "" {
		cfg.RawDataDir = rawDir
	}
	if outDir != "" {
		cfg.DataDir = outDir
	}
	if mygeneURL != "" {
		cfg.MyGeneURL = mygeneURL
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config) error {
	humanGenes, mouseGenes, err := LoadGeneSymbols(cfg.RawDataDir)
	if err != nil {
		return err
	}

	log.Println("Unique genes loaded:", len(humanGenes), "human,", len(mouseGenes), "mouse")

	if len(humanGenes) == 0 && len(mouseGenes) == 0 {
		return fmt.Errorf("no genes found in %s", cfg.RawDataDir)
	}

	client := mygene.NewClient(cfg.MyGeneURL)

	pairs, err := orthology.Build(client, humanGenes, mouseGenes)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		return fmt.Errorf("no orthology mappings were found")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	fullPath := filepath.Join(cfg.DataDir, "orthology_mapping_full.csv")
	if err := orthology.WritePairs(fullPath, pairs); err != nil {
		return err
	}
	log.Println("Full orthology mapping saved to", fullPath)

	simple := orthology.Simplify(pairs)
	simplePath := filepath.Join(cfg.DataDir, "orthology_mapping.csv")
	if err := orthology.WriteSimple(simplePath, simple); err != nil {
		return err
	}
	log.Println("Simplified mapping saved to", simplePath, "with", len(simple), "unique pairs")

	printSummary(pairs, len(humanGenes), len(mouseGenes))

	return nil
}

func printSummary(pairs []*orthology.Pair, nHumanInput, nMouseInput int) {
	uniqueHuman := make(map[string]bool)
	uniqueMouse := make(map[string]bool)
	bySource := make(map[string]int)
	h2m := make(map[string]int)
	m2h := make(map[string]int)

	for _, p := range pairs {
		uniqueHuman[p.HumanSymbol] = true
		uniqueMouse[p.MouseSymbol] = true
		bySource[p.MappingSource]++
		h2m[p.HumanSymbol]++
		m2h[p.MouseSymbol]++
	}

	multiMouse, multiHuman, maxMouse, maxHuman := 0, 0, 0, 0
	for _, n := range h2m {
		if n > 1 {
			multiMouse++
		}
		if n > maxMouse {
			maxMouse = n
		}
	}
	for _, n := range m2h {
		if n > 1 {
			multiHuman++
		}
		if n > maxHuman {
			maxHuman = n
		}
	}

	fmt.Println("ORTHOLOGY MAPPING SUMMARY")
	fmt.Println("Total ortholog pairs:", len(pairs))
	fmt.Printf("Human genes in input: %d; with mouse orthologs: %d\n", nHumanInput, len(uniqueHuman))
	fmt.Printf("Mouse genes in input: %d; with human orthologs: %d\n", nMouseInput, len(uniqueMouse))
	for source, n := range bySource {
		fmt.Printf("  %s: %d pairs\n", source, n)
	}
	fmt.Printf("Human genes with multiple mouse orthologs: %d (max %d)\n", multiMouse, maxMouse)
	fmt.Printf("Mouse genes with multiple human orthologs: %d (max %d)\n", multiHuman, maxHuman)
}
