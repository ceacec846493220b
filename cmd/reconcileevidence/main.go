// reconcileevidence resolves the Ambiguous and Unspecified genes in the
// final apoptotic gene list against external functional evidence: DepMap
// CRISPR gene-effect (Chronos) profiles, PRISM-style drug AUC correlations,
// UniProt annotations, and a curated literature table. It writes the
// reconciled gene list and a classification-confidence report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	apoptosisatlas "github.com/cellfate/apoptosisatlas"
	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/cellfate/apoptosisatlas/config"
	"github.com/cellfate/apoptosisatlas/consolidate"
	"github.com/cellfate/apoptosisatlas/depmap"
	"github.com/cellfate/apoptosisatlas/reconcile"
	"github.com/cellfate/apoptosisatlas/uniprot"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
// Consider aliasing in .profile: alias gobuild='go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"'
var builddate string

func main() {
	fmt.Fprintf(os.Stderr, "This reconcileevidence binary was built at: %s\n", builddate)

	var (
		configPath  string
		resultsDir  string
		geneEffect  string
		drugAUC     string
		literature  string
		skipUniProt bool
	)

	flag.StringVar(&configPath, "config", "", "Optional TOML run config.")
	flag.StringVar(&resultsDir, "resultsdir", "", "Directory holding final_apoptotic_gene_list.csv; outputs are written beside it. Overrides the run config.")
	flag.StringVar(&geneEffect, "geneeffect", "", "Path or URL to a DepMap CRISPR gene-effect (Chronos) matrix. Optional.")
	flag.StringVar(&drugAUC, "drugauc", "", "Path or URL to a PRISM-style drug AUC matrix. Optional; requires --geneeffect.")
	flag.StringVar(&literature, "literature", "", "Path to the curated literature override CSV (human_symbol,category,reference). Optional.")
	flag.BoolVar(&skipUniProt, "skipuniprot", false, "Skip the per-gene UniProt annotation lookups?")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if resultsDir != "" {
		cfg.ResultsDir = resultsDir
	}

	if drugAUC != "" && geneEffect == "" {
		log.Fatalln("--drugauc requires --geneeffect")
	}

	if err := run(cfg, geneEffect, drugAUC, literature, skipUniProt); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config.Config, geneEffect, drugAUC, literature string, skipUniProt bool) error {
	inPath := filepath.Join(cfg.ResultsDir, "final_apoptotic_gene_list.csv")
	genes, err := annotate.ReadGenes(inPath)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(genes), "genes from", inPath)

	// Only unresolved genes need external lookups.
	unresolved := make([]string, 0)
	for _, g := range genes {
		if g.Category == consolidate.CategoryAmbiguous || g.Category == consolidate.CategoryUnspecified {
			unresolved = append(unresolved, g.HumanSymbol)
		}
	}
	log.Println(len(unresolved), "genes are Ambiguous or Unspecified")

	ev := reconcile.Evidence{}

	var effect *depmap.Matrix
	if geneEffect != "" {
		effect, ev.Fitness, err = loadFitness(cfg, geneEffect, unresolved)
		if err != nil {
			return err
		}
	}

	if drugAUC != "" {
		corrs, err := loadDrugCorrelations(cfg, effect, drugAUC, unresolved)
		if err != nil {
			return err
		}
		ev.DrugCorrs = reconcile.GroupCorrelations(corrs)
	}

	if !skipUniProt {
		log.Println("Querying UniProt for", len(unresolved), "genes")
		client := uniprot.NewClient(cfg.UniProtURL)
		annotations, errs := client.LookupAll(unresolved)
		for symbol, err := range errs {
			log.Printf("  Warning: uniprot lookup failed for %s: %v\n", symbol, err)
		}
		ev.UniProt = annotations
	}

	if literature != "" {
		ev.Literature, err = reconcile.ReadLiterature(literature)
		if err != nil {
			return err
		}
		log.Println("Loaded", len(ev.Literature), "literature overrides")
	}

	out := reconcile.Reconcile(genes, ev)
	reconcile.SortForOutput(out)

	outPath := filepath.Join(cfg.ResultsDir, "reconciled_apoptotic_gene_list.csv")
	if err := reconcile.WriteGenes(outPath, out); err != nil {
		return err
	}
	log.Println("Saved reconciled gene list to", outPath)

	reportPath := filepath.Join(cfg.ResultsDir, "classification_report.md")
	if err := reconcile.WriteReport(reportPath, out, ev, time.Now()); err != nil {
		return err
	}
	log.Println("Saved classification report to", reportPath)

	reassigned := 0
	for _, g := range out {
		if g.Reassigned() {
			reassigned++
		}
	}
	log.Printf("Reconciliation reassigned %d/%d genes\n", reassigned, len(out))

	return nil
}

func loadFitness(cfg config.Config, geneEffect string, symbols []string) (*depmap.Matrix, map[string]*depmap.GeneSummary, error) {
	log.Println("Reading gene-effect matrix from", geneEffect)
	raw, err := apoptosisatlas.OpenFileOrURL(geneEffect)
	if err != nil {
		return nil, nil, err
	}

	effect, err := depmap.ParseMatrix(raw)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Gene-effect matrix:", len(effect.Lines), "cell lines,", len(effect.Columns()), "genes")

	th := depmap.Thresholds{
		Dependent:         cfg.ChronosDependent,
		DependentFraction: cfg.DependentFraction,
		Suppressive:       cfg.SuppressiveChronos,
	}

	summaries, err := depmap.Summarize(effect, symbols, th)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Fitness summaries computed for", len(summaries), "genes")

	summaryPath := filepath.Join(cfg.ResultsDir, "depmap_fitness_summary.csv")
	if err := depmap.WriteSummaries(summaryPath, summaries); err != nil {
		return nil, nil, err
	}
	log.Println("Saved fitness summaries to", summaryPath)

	return effect, depmap.SummaryMap(summaries), nil
}

func loadDrugCorrelations(cfg config.Config, effect *depmap.Matrix, drugAUC string, symbols []string) ([]*depmap.DrugCorrelation, error) {
	log.Println("Reading drug AUC matrix from", drugAUC)
	raw, err := apoptosisatlas.OpenFileOrURL(drugAUC)
	if err != nil {
		return nil, err
	}

	auc, err := depmap.ParseMatrix(raw)
	if err != nil {
		return nil, err
	}
	log.Println("Drug AUC matrix:", len(auc.Lines), "cell lines,", len(auc.Columns()), "compounds")

	corrs := depmap.CorrelateAll(effect, symbols, auc, cfg.MinSharedLines, cfg.MinCorrelation)
	log.Println("Retained", len(corrs), "gene-drug correlations")

	corrPath := filepath.Join(cfg.ResultsDir, "drug_sensitivity_correlations.csv")
	if err := depmap.WriteCorrelations(corrPath, corrs); err != nil {
		return nil, err
	}
	log.Println("Saved correlations to", corrPath)

	return corrs, nil
}
