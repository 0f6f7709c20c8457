package concar

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// WriteCSV writes the header row followed by one row per export line.
func WriteCSV(w io.Writer, rows []domain.ConcarRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.ConcarColumnHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(row.Columns()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
