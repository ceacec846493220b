package depmap

import (
	"math"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

// Fitness calls for a gene across the screened cell lines.
const (
	CallEssential          = "essential"
	CallFitnessSuppressive = "fitness_suppressive"
	CallNeutral            = "neutral"
)

// Thresholds parameterize the fitness calls.
type Thresholds struct {
	// Dependent marks a cell line as dependent on a gene when its Chronos
	// score is below this value.
	Dependent float64
	// DependentFraction is the fraction of dependent lines at which a gene
	// is called essential.
	DependentFraction float64
	// Suppressive is the mean Chronos above which knockout is called
	// growth-promoting.
	Suppressive float64
}

// GeneSummary describes one gene's knockout fitness profile.
type GeneSummary struct {
	Symbol        string  `csv:"human_symbol"`
	NLines        int     `csv:"n_lines"`
	MeanChronos   float64 `csv:"mean_chronos"`
	MedianChronos float64 `csv:"median_chronos"`
	StdDevChronos float64 `csv:"stddev_chronos"`
	FracDependent float64 `csv:"frac_dependent"`
	Call          string  `csv:"fitness_call"`
}

// Summarize computes per-gene fitness summaries for the requested symbols.
// Symbols absent from the matrix are skipped.
func Summarize(m *Matrix, symbols []string, th Thresholds) ([]*GeneSummary, error) {
	out := make([]*GeneSummary, 0, len(symbols))

	for _, symbol := range symbols {
		col, exists := m.GeneColumn(symbol)
		if !exists {
			continue
		}

		values := make([]float64, 0, len(col))
		dependent := 0
		for _, v := range col {
			if math.IsNaN(v) {
				continue
			}
			values = append(values, v)
			if v < th.Dependent {
				dependent++
			}
		}

		if len(values) == 0 {
			continue
		}

		data := stats.LoadRawData(values)

		mean, err := data.Mean()
		if err != nil {
			return nil, pfx.Err(err)
		}
		median, err := data.Median()
		if err != nil {
			return nil, pfx.Err(err)
		}
		sd, err := data.StandardDeviation()
		if err != nil {
			return nil, pfx.Err(err)
		}

		frac := float64(dependent) / float64(len(values))

		call := CallNeutral
		if frac >= th.DependentFraction {
			call = CallEssential
		} else if mean > th.Suppressive {
			call = CallFitnessSuppressive
		}

		out = append(out, &GeneSummary{
			Symbol:        symbol,
			NLines:        len(values),
			MeanChronos:   mean,
			MedianChronos: median,
			StdDevChronos: sd,
			FracDependent: frac,
			Call:          call,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })

	return out, nil
}

// SummaryMap keys summaries by symbol.
func SummaryMap(summaries []*GeneSummary) map[string]*GeneSummary {
	out := make(map[string]*GeneSummary, len(summaries))
	for _, s := range summaries {
		out[s.Symbol] = s
	}
	return out
}

// WriteSummaries saves gene fitness summaries to CSV.
func WriteSummaries(path string, summaries []*GeneSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&summaries, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}
