// Package record captures rendered frames to MJPEG video and PNG stills.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"turmites/internal/render"

	"github.com/icza/mjpeg"
)

// ErrClosed is returned when frames are added after Close.
var ErrClosed = errors.New("recorder closed")

// FrameSink receives encoded JPEG frames. mjpeg.AviWriter satisfies it.
type FrameSink interface {
	AddFrame(jpegData []byte) error
	Close() error
}

// Options controls the output geometry and encoding.
type Options struct {
	Scale   int
	FPS     int
	Quality int
}

// DefaultOptions matches the GUI's window scale.
func DefaultOptions() Options {
	return Options{Scale: 4, FPS: 30, Quality: 90}
}

// Recorder upscales RGBA8 frames and appends them to a FrameSink.
type Recorder struct {
	sink    FrameSink
	w, h    int
	scale   int
	jpegOpt jpeg.Options

	scaled *image.RGBA
	buf    bytes.Buffer
	frames int
	closed bool
}

// NewRecorder opens an MJPEG AVI at path for a w*h grid.
func NewRecorder(path string, w, h int, opts Options) (*Recorder, error) {
	opts = normalize(opts)
	avi, err := mjpeg.New(path, int32(w*opts.Scale), int32(h*opts.Scale), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return NewWithSink(avi, w, h, opts), nil
}

// NewWithSink builds a Recorder around an existing sink.
func NewWithSink(sink FrameSink, w, h int, opts Options) *Recorder {
	opts = normalize(opts)
	return &Recorder{
		sink:    sink,
		w:       w,
		h:       h,
		scale:   opts.Scale,
		jpegOpt: jpeg.Options{Quality: opts.Quality},
	}
}

func normalize(opts Options) Options {
	def := DefaultOptions()
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	return opts
}

// AddFrame encodes one RGBA8 frame of the recorder's grid size.
func (r *Recorder) AddFrame(frame []byte) error {
	if r.closed {
		return ErrClosed
	}
	if want := 4 * r.w * r.h; len(frame) != want {
		return fmt.Errorf("frame has %d bytes, want %d", len(frame), want)
	}
	img := render.Upscale(r.scaled, render.FrameImage(frame, r.w, r.h), r.scale)
	if r.scale > 1 {
		r.scaled = img
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &r.jpegOpt); err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.frames, err)
	}
	if err := r.sink.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("adding frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the video. Calling it twice is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.sink.Close()
}

// WritePNG saves an RGBA8 frame, enlarged by scale, as a PNG file.
func WritePNG(path string, frame []byte, w, h, scale int) error {
	img := render.Upscale(nil, render.FrameImage(frame, w, h), scale)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
