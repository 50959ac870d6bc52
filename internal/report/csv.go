package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

// WriteCSV writes every column of the table, one row per level
func WriteCSV(w io.Writer, t chimney.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(fullSheet.headers()); err != nil {
		return err
	}
	for _, lv := range t {
		if err := cw.Write(fullSheet.strings(lv)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to a CSV file
func SaveCSV(path string, t chimney.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, t); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
