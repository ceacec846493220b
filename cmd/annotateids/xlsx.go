package main

import (
	"fmt"

	"github.com/cellfate/apoptosisatlas/annotate"
	"github.com/xuri/excelize/v2"
)

// writeXLSX writes the final gene list to a single-sheet workbook for
// collaborators who review the list in a spreadsheet.
func writeXLSX(path string, genes []*annotate.Gene) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "ApoptoticGenes"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	header := []interface{}{
		"human_symbol", "human_ensembl_id", "mouse_symbol", "mouse_ensembl_id",
		"category", "sources", "evidence_score",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, g := range genes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []interface{}{
			g.HumanSymbol, g.HumanEnsemblID, g.MouseSymbol, g.MouseEnsemblID,
			g.Category, g.Sources, g.EvidenceScore,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	return f.SaveAs(path)
}
