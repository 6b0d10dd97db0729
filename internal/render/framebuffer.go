// Package render implements the tile-parallel renderer shared by both
// engines, the accumulating framebuffer, and the PPM tone-mapping encoder.
package render

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"pathtracer/internal/rerr"
	"pathtracer/internal/vecmath"
)

// Mode selects how a sample is combined into an existing framebuffer cell.
type Mode int

const (
	Overwrite Mode = iota
	Add
)

const gammaExponent = 1.0 / 1.67

// Framebuffer is a two-dimensional array of accumulated radiance triples.
type Framebuffer struct {
	Width, Height int
	pixels        []vecmath.Vector3
	counts        []int
}

// NewFramebuffer allocates a zeroed W x H framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]vecmath.Vector3, width*height),
		counts: make([]int, width*height),
	}
}

func (f *Framebuffer) index(x, y int) int {
	return y*f.Width + x
}

// Set writes or accumulates a radiance sample at (x, y) according to mode.
// Add mode divides by the running sample count on read (see Mean), so the
// final pixel color is always the unweighted mean of every sample applied
// to it.
func (f *Framebuffer) Set(x, y int, c vecmath.Vector3, mode Mode) {
	i := f.index(x, y)
	switch mode {
	case Overwrite:
		f.pixels[i] = c
		f.counts[i] = 1
	default: // Add
		f.pixels[i] = vecmath.Add(f.pixels[i], c)
		f.counts[i]++
	}
}

// Mean returns the accumulated mean radiance at (x, y).
func (f *Framebuffer) Mean(x, y int) vecmath.Vector3 {
	i := f.index(x, y)
	if f.counts[i] == 0 {
		return vecmath.Zero
	}
	return vecmath.Scale(f.pixels[i], 1/float64(f.counts[i]))
}

// toneMap applies the fixed PPM tone curve: 255*clamp(c,0,1)^gammaExponent,
// truncated to the nearest byte below (not rounded).
func toneMap(c float64) byte {
	clamped := math.Max(0, math.Min(1, c))
	v := 255 * math.Pow(clamped, gammaExponent)
	return byte(math.Floor(v))
}

// WritePPM encodes the framebuffer as binary PPM P6: header
// "P6\n<W> <H>\n255\n" followed by W*H*3 bytes, row-major from y=0 downward.
func (f *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return &rerr.IOFailure{Cause: err}
	}
	row := make([]byte, f.Width*3)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Mean(x, y)
			row[x*3+0] = toneMap(c.X)
			row[x*3+1] = toneMap(c.Y)
			row[x*3+2] = toneMap(c.Z)
		}
		if _, err := bw.Write(row); err != nil {
			return &rerr.IOFailure{Cause: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &rerr.IOFailure{Cause: err}
	}
	return nil
}
