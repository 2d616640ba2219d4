package render

import (
	"image/color"
	"testing"
)

func TestFrameImageSharesBuffer(t *testing.T) {
	buf := NewFrame(3, 2)
	img := FrameImage(buf, 3, 2)
	img.SetRGBA(2, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	if got := PixelAt(buf, 3, 2, 1); got != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatalf("PixelAt(2,1) = %+v, want the pixel written through the image", got)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", b)
	}
}

func TestUpscale(t *testing.T) {
	buf := NewFrame(2, 1)
	src := FrameImage(buf, 2, 1)
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)

	dst := Upscale(nil, src, 3)
	if b := dst.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 6x3", b)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := red
			if x >= 3 {
				want = blue
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
	if again := Upscale(dst, src, 3); again != dst {
		t.Fatal("Upscale should reuse a destination with matching bounds")
	}
	if same := Upscale(nil, src, 1); same != src {
		t.Fatal("scale 1 should return the source")
	}
}
