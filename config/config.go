// Package config holds the shared run configuration for the workflow cmds.
// Every value has a default so the tools run without a config file; a TOML
// file can override directories and thresholds, and per-cmd flags override
// both.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Directories
	RawDataDir string `toml:"raw_data_dir"`
	DataDir    string `toml:"data_dir"`
	ResultsDir string `toml:"results_dir"`

	// Remote endpoints
	EnrichrURL string `toml:"enrichr_url"`
	MyGeneURL  string `toml:"mygene_url"`
	UniProtURL string `toml:"uniprot_url"`

	// Gene set libraries
	HumanGOLibrary  string `toml:"human_go_library"`
	MouseGOLibrary  string `toml:"mouse_go_library"`
	KEGGLibrary     string `toml:"kegg_library"`
	ReactomeLibrary string `toml:"reactome_library"`
	HallmarkLibrary string `toml:"hallmark_library"`

	// Reconciliation thresholds
	ChronosDependent   float64 `toml:"chronos_dependent"`
	DependentFraction  float64 `toml:"dependent_fraction"`
	SuppressiveChronos float64 `toml:"suppressive_chronos"`
	MinCorrelation     float64 `toml:"min_correlation"`
	MinSharedLines     int     `toml:"min_shared_lines"`
}

func Default() Config {
	return Config{
		RawDataDir: "workflow/raw_data",
		DataDir:    "workflow/data",
		ResultsDir: "results",

		EnrichrURL: "https://maayanlab.cloud/Enrichr",
		MyGeneURL:  "https://mygene.info/v3",
		UniProtURL: "https://rest.uniprot.org/uniprotkb/search",

		HumanGOLibrary:  "GO_Biological_Process_2023",
		MouseGOLibrary:  "GO_Biological_Process_2021",
		KEGGLibrary:     "KEGG_2021_Human",
		ReactomeLibrary: "Reactome_2022",
		HallmarkLibrary: "MSigDB_Hallmark_2020",

		ChronosDependent:   -0.5,
		DependentFraction:  0.5,
		SuppressiveChronos: 0.2,
		MinCorrelation:     0.3,
		MinSharedLines:     20,
	}
}

// Load returns defaults overlaid with any values defined in the TOML file at
// path. An empty path returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load run config: %w", err)
	}

	for _, key := range meta.Undecoded() {
		return Config{}, fmt.Errorf("run config: unknown key %q", key)
	}

	return cfg, nil
}
