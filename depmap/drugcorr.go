package depmap

import (
	"math"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/gonum/stat"
)

// DrugCorrelation is the Pearson correlation between one gene's Chronos
// profile and one compound's AUC profile over their shared cell lines.
// A negative correlation means lines that depend on the gene are also
// sensitive to the drug (low Chronos with low AUC).
type DrugCorrelation struct {
	Symbol  string  `csv:"human_symbol"`
	Drug    string  `csv:"drug"`
	NShared int     `csv:"n_shared_lines"`
	Pearson float64 `csv:"pearson_r"`
}

// CorrelateGeneDrugs correlates one gene against every compound column.
// Only correlations computed over at least minShared lines and with
// |r| >= minAbsR are reported, strongest first.
func CorrelateGeneDrugs(effect *Matrix, symbol string, auc *Matrix, minShared int, minAbsR float64) []*DrugCorrelation {
	geneCol, exists := effect.GeneColumn(symbol)
	if !exists {
		return nil
	}

	// Index the gene profile by cell line.
	geneByLine := make(map[string]float64, len(effect.Lines))
	for i, line := range effect.Lines {
		if !math.IsNaN(geneCol[i]) {
			geneByLine[line] = geneCol[i]
		}
	}

	out := make([]*DrugCorrelation, 0)

	for _, drug := range auc.Columns() {
		drugCol, _ := auc.Column(drug)

		x := make([]float64, 0)
		y := make([]float64, 0)
		for i, line := range auc.Lines {
			g, shared := geneByLine[line]
			if !shared || math.IsNaN(drugCol[i]) {
				continue
			}
			x = append(x, g)
			y = append(y, drugCol[i])
		}

		if len(x) < minShared {
			continue
		}

		r := stat.Correlation(x, y, nil)
		if math.IsNaN(r) || math.Abs(r) < minAbsR {
			continue
		}

		out = append(out, &DrugCorrelation{
			Symbol:  symbol,
			Drug:    drug,
			NShared: len(x),
			Pearson: r,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Pearson) > math.Abs(out[j].Pearson)
	})

	return out
}

// CorrelateAll runs CorrelateGeneDrugs for each symbol and concatenates the
// surviving correlations.
func CorrelateAll(effect *Matrix, symbols []string, auc *Matrix, minShared int, minAbsR float64) []*DrugCorrelation {
	out := make([]*DrugCorrelation, 0)
	for _, symbol := range symbols {
		out = append(out, CorrelateGeneDrugs(effect, symbol, auc, minShared, minAbsR)...)
	}
	return out
}

// WriteCorrelations saves drug correlations to CSV.
func WriteCorrelations(path string, corrs []*DrugCorrelation) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&corrs, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}
