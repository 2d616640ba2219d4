package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Writer appends FrameStats rows as CSV, writing the header once.
type Writer struct {
	out           io.Writer
	headerWritten bool
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends one row.
func (w *Writer) Write(stats FrameStats) error {
	records := []FrameStats{stats}

	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing frame stats: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}
