package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCellStyleColors(t *testing.T) {
	fg, bg, _ := CellStyle(255, 10, 0, 1, 2, 3).Decompose()
	if fg != tcell.NewRGBColor(255, 10, 0) {
		t.Fatalf("foreground = %v", fg)
	}
	if bg != tcell.NewRGBColor(1, 2, 3) {
		t.Fatalf("background = %v", bg)
	}
	if r, g, b := fg.RGB(); r != 255 || g != 10 || b != 0 {
		t.Fatalf("foreground rgb = (%d,%d,%d)", r, g, b)
	}
}

func TestRowsPacksTwoGridRows(t *testing.T) {
	tests := []struct{ h, rows int }{{1, 1}, {2, 1}, {3, 2}, {64, 32}}
	for _, tt := range tests {
		p := NewPainter(nil, 4, tt.h)
		if got := p.Rows(); got != tt.rows {
			t.Errorf("Rows() for h=%d = %d, want %d", tt.h, got, tt.rows)
		}
	}
}
