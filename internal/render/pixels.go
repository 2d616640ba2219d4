package render

import (
	"image"
	"image/color"
)

// NewFrame allocates an RGBA8 buffer sized for a w*h grid.
func NewFrame(w, h int) []byte {
	return make([]byte, 4*w*h)
}

// FrameImage wraps an RGBA8 frame buffer as an image without copying.
func FrameImage(buf []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: buf, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}

// Upscale returns src enlarged by an integer factor with nearest-neighbour
// sampling, writing into dst when it already has the right bounds.
func Upscale(dst *image.RGBA, src *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		srow := src.Pix[(y/scale)*src.Stride:]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			copy(drow[x*4:x*4+4], srow[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return dst
}

// PixelAt reads the color at (x, y) from an RGBA8 frame of width w.
func PixelAt(buf []byte, w, x, y int) color.RGBA {
	base := (y*w + x) * 4
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}
