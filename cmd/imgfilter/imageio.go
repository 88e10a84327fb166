package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

var errRawSize = errors.New("raw file size does not match dimensions")

// rawSampleSize is the size of one little-endian float32 sample.
const rawSampleSize = 4

type format int

const (
	formatRaw format = iota
	formatPNG
	formatJPEG
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return formatPNG
	case ".jpg", ".jpeg":
		return formatJPEG
	default:
		return formatRaw
	}
}

// grayImage is a plane of gray values, nominally in [0, 1].
type grayImage struct {
	width, height int
	data          []float32
}

// parseDims parses "WxH".
func parseDims(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("dimensions %q: want WxH", s)
	}

	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("dimensions %q: %w", s, err)
	}

	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("dimensions %q: %w", s, err)
	}

	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("dimensions %q: must be positive", s)
	}

	if w > math.MaxInt/rawSampleSize/h {
		return 0, 0, fmt.Errorf("dimensions %q: too large", s)
	}

	return w, h, nil
}

// readImage loads path. A non-empty raw gives the dimensions of a raw
// float32 file; otherwise the file is decoded as PNG or JPEG.
func readImage(fs afero.Fs, path, raw string) (*grayImage, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	if raw != "" {
		w, h, err := parseDims(raw)
		if err != nil {
			return nil, err
		}

		info, err := f.Stat()
		if err != nil {
			return nil, err
		}

		if want := int64(w) * int64(h) * rawSampleSize; info.Size() != want {
			return nil, fmt.Errorf("%w: %dx%d needs %d bytes, %s has %d", errRawSize, w, h, want, path, info.Size())
		}

		return readRaw(r, w, h)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return toGray(img), nil
}

func readRaw(r io.Reader, width, height int) (*grayImage, error) {
	g := &grayImage{width: width, height: height, data: make([]float32, width*height)}

	if err := binary.Read(r, binary.LittleEndian, g.data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %dx%d", errRawSize, width, height)
		}

		return nil, err
	}

	if _, err := r.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %dx%d, trailing data", errRawSize, width, height)
	}

	return g, nil
}

func toGray(img image.Image) *grayImage {
	b := img.Bounds()
	g := &grayImage{width: b.Dx(), height: b.Dy(), data: make([]float32, b.Dx()*b.Dy())}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.data[(y-b.Min.Y)*g.width:]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			row[x-b.Min.X] = float32(c.Y) / math.MaxUint16
		}
	}

	return g
}

// writeImage stores g in the format chosen by the extension of path.
// Image formats clamp samples to [0, 1].
func writeImage(fs afero.Fs, path string, g *grayImage) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)

	switch formatOf(path) {
	case formatPNG:
		err = png.Encode(w, g.gray16())
	case formatJPEG:
		err = jpeg.Encode(w, g.gray16(), &jpeg.Options{Quality: 95})
	default:
		err = binary.Write(w, binary.LittleEndian, g.data)
	}

	if err != nil {
		return err
	}

	return w.Flush()
}

func (g *grayImage) gray16() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.width, g.height))

	for y := range g.height {
		for x := range g.width {
			v := float64(g.data[y*g.width+x])
			if math.IsNaN(v) {
				v = 0
			}

			v = min(max(v, 0), 1)
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}

	return img
}
