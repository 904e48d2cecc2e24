package output

import (
	"encoding/csv"
	"io"

	"github.com/cardex/cardex/internal/card"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{"name", "code", "rarity"}

// CSVWriter writes records as UTF-8 CSV with a header row.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write writes a single record, emitting the header first if needed.
func (w *CSVWriter) Write(rec card.Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(csvHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.w.Write([]string{rec.Name, rec.Code, rec.Rarity})
}

// WriteAll writes multiple records.
func (w *CSVWriter) WriteAll(recs []card.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the header even for an empty result set, then flushes.
func (w *CSVWriter) Flush() error {
	if !w.wroteHeader {
		if err := w.w.Write(csvHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
