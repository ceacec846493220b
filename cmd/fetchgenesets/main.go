// fetchgenesets retrieves the apoptosis gene sets from the Enrichr/MSigDB
// library service (GO Biological Process pro/anti sets for human and mouse,
// plus the KEGG, Reactome, and Hallmark apoptosis pathways) and writes the
// raw_data CSVs consumed by the rest of the workflow.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	apoptosisatlas "github.com/cellfate/apoptosisatlas"
	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/geneset"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

func main() {
	fmt.Fprintf(os.Stderr, "This fetchgenesets binary was built at: %s\n", builddate)

	var configPath, outDir, enrichrURL string

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&outDir, "outdir", "", "Output directory for raw_data CSVs. Overrides the run config.")
	flag.StringVar(&enrichrURL, "enrichr", "", "Base URL of the Enrichr service. Overrides the run config.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if outDir != "" {
		cfg.RawDataDir = outDir
	}
	if enrichrURL != "" {
		cfg.EnrichrURL = enrichrURL
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config) error {
	if err := os.MkdirAll(cfg.RawDataDir, 0o755); err != nil {
		return err
	}
	log.Println("Output directory:", cfg.RawDataDir)

	counts := make(map[string]int)

	// GO Biological Process, human: split into pro and anti sets.
	log.Println("Fetching", cfg.HumanGOLibrary)
	humanGO, err := geneset.FetchLibrary(apoptosisatlas.OpenFileOrURL, cfg.EnrichrURL, cfg.HumanGOLibrary)
	if err != nil {
		return err
	}

	pro, anti := geneset.SelectDirectionalGO(humanGO)
	logSets("human GO pro", pro)
	logSets("human GO anti", anti)

	if err := save(cfg.RawDataDir, "human_go_pro.csv", pro, "GO_BP", geneset.CategoryPro, "Human", counts); err != nil {
		return err
	}
	if err := save(cfg.RawDataDir, "human_go_anti.csv", anti, "GO_BP", geneset.CategoryAnti, "Human", counts); err != nil {
		return err
	}

	// GO Biological Process, mouse.
	log.Println("Fetching", cfg.MouseGOLibrary, "(mouse)")
	mouseGO, err := geneset.FetchLibrary(apoptosisatlas.OpenFileOrURL, cfg.EnrichrURL, cfg.MouseGOLibrary)
	if err != nil {
		// Mouse coverage is optional: the ortholog mapping can still be
		// built from the human side alone.
		log.Println("Mouse GO library unavailable:", err)
		log.Println("Human data will drive the ortholog mapping")
	} else {
		mousePro, mouseAnti := geneset.SelectDirectionalGO(mouseGO)
		logSets("mouse GO pro", mousePro)
		logSets("mouse GO anti", mouseAnti)

		if err := save(cfg.RawDataDir, "mouse_go_pro.csv", mousePro, "GO_BP", geneset.CategoryPro, "Mouse", counts); err != nil {
			return err
		}
		if err := save(cfg.RawDataDir, "mouse_go_anti.csv", mouseAnti, "GO_BP", geneset.CategoryAnti, "Mouse", counts); err != nil {
			return err
		}
	}

	// Pathway sources: one undirected apoptosis set each.
	pathways := []struct {
		library  string
		source   string
		filename string
	}{
		{cfg.KEGGLibrary, "KEGG", "human_kegg_apoptosis.csv"},
		{cfg.ReactomeLibrary, "Reactome", "human_reactome_apoptosis.csv"},
		{cfg.HallmarkLibrary, "Hallmark", "human_hallmark_apoptosis.csv"},
	}

	for _, p := range pathways {
		log.Println("Fetching", p.library)
		lib, err := geneset.FetchLibrary(apoptosisatlas.OpenFileOrURL, cfg.EnrichrURL, p.library)
		if err != nil {
			return err
		}

		sets := geneset.SelectApoptosis(lib)
		logSets(p.source, sets)

		if err := save(cfg.RawDataDir, p.filename, sets, p.source, geneset.CategoryGeneral, "Human", counts); err != nil {
			return err
		}
	}

	log.Println("Data acquisition complete:")
	for _, name := range []string{"human_go_pro.csv", "human_go_anti.csv", "mouse_go_pro.csv", "mouse_go_anti.csv", "human_kegg_apoptosis.csv", "human_reactome_apoptosis.csv", "human_hallmark_apoptosis.csv"} {
		if n, exists := counts[name]; exists {
			log.Printf("  %s: %d gene entries\n", name, n)
		}
	}

	return nil
}

func logSets(label string, sets geneset.Library) {
	if len(sets) == 0 {
		log.Println("  Warning: no matching gene sets for", label)
		return
	}
	for name, genes := range sets {
		log.Printf("  %s: %s (%d genes)\n", label, name, len(genes))
	}
}

func save(dir, filename string, sets geneset.Library, source, category, organism string, counts map[string]int) error {
	if len(sets) == 0 {
		return nil
	}

	records := geneset.Records(sets, source, category, organism)
	path := filepath.Join(dir, filename)

	if err := geneset.WriteRecords(path, records); err != nil {
		return err
	}

	counts[filename] = len(records)
	log.Printf("  Saved %d entries to %s\n", len(records), filename)

	return nil
}
