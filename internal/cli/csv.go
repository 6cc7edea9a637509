package cli

import (
	"encoding/csv"
	"fmt"
	"io"
)

// writeCSV renders records to w. CSV is a presentation concern; the engine
// only supplies the tabular data.
func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
