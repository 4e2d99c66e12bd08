package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes one sheet with its header row
func WriteCSV(w io.Writer, s Sheet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(s.Header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, row := range s.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
