// Package report writes a spreadsheet listing the geotagged photos of a run.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/electronjoe/photomap/internal/geotag"
)

const SheetName = "Photos"

// Row is one geotagged photo.
type Row struct {
	Name        string
	Path        string
	Coordinates geotag.Coordinates
}

var headers = []interface{}{
	"File", "Path", "Latitude", "Longitude", "Latitude (DMS)", "Longitude (DMS)",
}

// Write saves rows to an .xlsx workbook at path.
func Write(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Name,
			r.Path,
			r.Coordinates.Latitude,
			r.Coordinates.Longitude,
			geotag.FormatDMS(r.Coordinates.Latitude, geotag.Latitude),
			geotag.FormatDMS(r.Coordinates.Longitude, geotag.Longitude),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}
