package render

import (
	"fmt"
	"image"
	"image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// playOnce makes viewers stop on the last frame.
const playOnce = -1

// EncodeGIF writes frames as one animated GIF that plays once, showing
// each frame for delay.
func EncodeGIF(w io.Writer, frames []*Rendered, delay time.Duration) error {
	if len(frames) == 0 {
		return ErrEmpty
	}
	cs := int(delay / (10 * time.Millisecond))
	anim := &gif.GIF{LoopCount: playOnce}
	for _, f := range frames {
		anim.Image = append(anim.Image, paletted(f.Image()))
		anim.Delay = append(anim.Delay, cs)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("%w: gif: %w", ErrEncode, err)
	}
	return nil
}

// WriteGIF creates path and encodes frames into it.
func WriteGIF(path string, frames []*Rendered, delay time.Duration) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := EncodeGIF(fh, frames, delay); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// WritePNGs writes one <year>.png per frame into dir and returns the paths.
func WritePNGs(dir string, frames []*Rendered) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	paths := make([]string, 0, len(frames))
	for _, f := range frames {
		path := filepath.Join(dir, strconv.Itoa(f.Year)+".png")
		fh, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		werr := f.WritePNG(fh)
		cerr := fh.Close()
		if werr != nil {
			return paths, werr
		}
		if cerr != nil {
			return paths, fmt.Errorf("%w: %w", ErrEncode, cerr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// paletted maps img onto the Plan 9 palette without dithering so thin
// lines stay crisp.
func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	imagedraw.Draw(dst, b, img, b.Min, imagedraw.Src)
	return dst
}
