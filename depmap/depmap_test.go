package depmap

import (
	"math"
	"testing"
)

const effectCSV = `ModelID,BAX (581),BCL2 (596),MCL1 (4170)
ACH-000001,0.1,-0.9,-1.2
ACH-000002,0.3,-0.7,-0.8
ACH-000003,0.4,-0.6,
ACH-000004,0.2,-0.2,-1.1
`

func TestParseMatrix(t *testing.T) {
	m, err := ParseMatrix([]byte(effectCSV))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(m.Lines))
	}
	if cols := m.Columns(); len(cols) != 3 || cols[0] != "BAX (581)" {
		t.Errorf("unexpected columns: %v", cols)
	}

	mcl1, exists := m.GeneColumn("MCL1")
	if !exists {
		t.Fatal("MCL1 not found by symbol")
	}
	if !math.IsNaN(mcl1[2]) {
		t.Errorf("blank cell should be NaN, got %v", mcl1[2])
	}
}

func TestParseMatrixTSV(t *testing.T) {
	tsv := "ModelID\tBAX (581)\nACH-000001\t-0.5\nACH-000002\t0.25\n"
	m, err := ParseMatrix([]byte(tsv))
	if err != nil {
		t.Fatal(err)
	}

	col, exists := m.GeneColumn("BAX")
	if !exists || col[1] != 0.25 {
		t.Errorf("TSV sniffing failed: %v %v", exists, col)
	}
}

func TestParseMatrixRagged(t *testing.T) {
	if _, err := ParseMatrix([]byte("ModelID,A\nACH-000001,1,2\n")); err == nil {
		t.Error("expected error for ragged row")
	}
}

func TestSummarize(t *testing.T) {
	m, err := ParseMatrix([]byte(effectCSV))
	if err != nil {
		t.Fatal(err)
	}

	th := Thresholds{Dependent: -0.5, DependentFraction: 0.5, Suppressive: 0.2}

	summaries, err := Summarize(m, []string{"BAX", "BCL2", "MCL1", "ABSENT"}, th)
	if err != nil {
		t.Fatal(err)
	}

	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	bySym := SummaryMap(summaries)

	// BAX: all positive scores, mean 0.25 > 0.2
	if got := bySym["BAX"].Call; got != CallFitnessSuppressive {
		t.Errorf("BAX call = %q", got)
	}

	// BCL2: 3/4 lines below -0.5
	bcl2 := bySym["BCL2"]
	if bcl2.Call != CallEssential {
		t.Errorf("BCL2 call = %q", bcl2.Call)
	}
	if bcl2.FracDependent != 0.75 {
		t.Errorf("BCL2 frac dependent = %v", bcl2.FracDependent)
	}
	if bcl2.NLines != 4 {
		t.Errorf("BCL2 n lines = %d", bcl2.NLines)
	}

	// MCL1: NaN line excluded from counts
	if got := bySym["MCL1"].NLines; got != 3 {
		t.Errorf("MCL1 n lines = %d", got)
	}
}

func TestCorrelateGeneDrugs(t *testing.T) {
	effect, err := ParseMatrix([]byte(
		"ModelID,GENE1 (1)\nL1,-1.0\nL2,-0.5\nL3,0.0\nL4,0.5\n"))
	if err != nil {
		t.Fatal(err)
	}

	// drugA AUC rises with Chronos (r=1); drugB is uncorrelated noise.
	auc, err := ParseMatrix([]byte(
		"ModelID,drugA,drugB\nL1,0.2,0.9\nL2,0.4,0.1\nL3,0.6,0.8\nL4,0.8,0.2\n"))
	if err != nil {
		t.Fatal(err)
	}

	corrs := CorrelateGeneDrugs(effect, "GENE1", auc, 4, 0.9)

	if len(corrs) != 1 {
		t.Fatalf("expected 1 passing correlation, got %d", len(corrs))
	}
	if corrs[0].Drug != "drugA" || corrs[0].NShared != 4 {
		t.Errorf("unexpected correlation: %+v", corrs[0])
	}
	if math.Abs(corrs[0].Pearson-1) > 1e-9 {
		t.Errorf("drugA r = %v, want 1", corrs[0].Pearson)
	}

	// Below the shared-line floor nothing is reported.
	if got := CorrelateGeneDrugs(effect, "GENE1", auc, 5, 0.0); len(got) != 0 {
		t.Errorf("min shared lines not enforced: %+v", got)
	}
}
