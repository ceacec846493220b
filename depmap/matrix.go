// Package depmap reads DepMap-style cell line matrices (CRISPR Chronos gene
// effects, PRISM drug AUCs) and summarizes them into per-gene evidence for
// the reconciliation step.
package depmap

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	apoptosisatlas "github.com/cellfate/apoptosisatlas"
)

// Matrix is a cell-line by entity table: rows are cell lines, columns are
// genes or compounds. Missing cells are NaN.
type Matrix struct {
	Lines   []string
	columns map[string][]float64
	order   []string
}

// ParseMatrix reads a matrix file. The delimiter is sniffed; the first
// column holds cell line IDs; empty cells become NaN.
func ParseMatrix(raw []byte) (*Matrix, error) {
	delim := apoptosisatlas.DetermineDelimiter(bytes.NewReader(raw))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = delim
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(header) < 2 {
		return nil, pfx.Err(fmt.Errorf("matrix header has %d columns; need a line ID column plus data", len(header)))
	}

	m := &Matrix{
		columns: make(map[string][]float64),
		order:   make([]string, 0, len(header)-1),
	}
	for _, name := range header[1:] {
		name = strings.TrimSpace(name)
		m.columns[name] = make([]float64, 0)
		m.order = append(m.order, name)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(rec) != len(header) {
			return nil, pfx.Err(fmt.Errorf("row for %q has %d fields, header has %d", rec[0], len(rec), len(header)))
		}

		m.Lines = append(m.Lines, rec[0])
		for i, name := range m.order {
			v := math.NaN()
			if cell := strings.TrimSpace(rec[i+1]); cell != "" && !strings.EqualFold(cell, "na") {
				parsed, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, pfx.Err(fmt.Errorf("row %q column %q: %v", rec[0], name, err))
				}
				v = parsed
			}
			m.columns[name] = append(m.columns[name], v)
		}
	}

	return m, nil
}

// Columns returns the column names in file order.
func (m *Matrix) Columns() []string {
	return m.order
}

// Column returns the per-line values for a column name.
func (m *Matrix) Column(name string) ([]float64, bool) {
	v, exists := m.columns[name]
	return v, exists
}

// GeneColumn finds a column by gene symbol, tolerating the DepMap
// "SYMBOL (entrez)" header convention.
func (m *Matrix) GeneColumn(symbol string) ([]float64, bool) {
	if v, exists := m.columns[symbol]; exists {
		return v, true
	}

	for name, v := range m.columns {
		if ColumnSymbol(name) == symbol {
			return v, true
		}
	}

	return nil, false
}

// ColumnSymbol strips the " (entrez)" suffix from a DepMap column header.
func ColumnSymbol(name string) string {
	if i := strings.Index(name, " ("); i >= 0 {
		return name[:i]
	}
	return name
}
