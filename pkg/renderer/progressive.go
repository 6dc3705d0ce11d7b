package renderer

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Accumulator is a linear float RGB buffer holding the running average of
// every sample traced for each pixel since the last reset
type Accumulator struct {
	width  int
	height int
	pixels []core.Vec3
	count  int // samples per pixel already folded in
}

// NewAccumulator creates an empty accumulator for width x height pixels
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Bounds returns the accumulator dimensions
func (a *Accumulator) Bounds() (width, height int) {
	return a.width, a.height
}

// Count returns how many frames have been accumulated
func (a *Accumulator) Count() int {
	return a.count
}

// Reset discards all accumulated samples
func (a *Accumulator) Reset() {
	clear(a.pixels)
	a.count = 0
}

// Blend folds color c into pixel (x, y) as the n-th sample. The caller
// guarantees each pixel is written by a single goroutine per frame.
func (a *Accumulator) Blend(x, y, n int, c core.Vec3) {
	i := x + y*a.width
	last := a.pixels[i]
	a.pixels[i] = last.Add(c.Subtract(last).Multiply(1 / float64(n)))
}

// At returns the accumulated linear color of pixel (x, y)
func (a *Accumulator) At(x, y int) core.Vec3 {
	return a.pixels[x+y*a.width]
}

// MeanLuminance returns the average luminance of the accumulated linear
// image. Non-finite pixels count as black, matching Image.
func (a *Accumulator) MeanLuminance() float64 {
	if len(a.pixels) == 0 {
		return 0
	}
	lum := make([]float64, len(a.pixels))
	for i, c := range a.pixels {
		if c.IsFinite() {
			lum[i] = c.Luminance()
		}
	}
	return stat.Mean(lum, nil)
}

// advance completes a frame and returns its sample number a new frame and returns its sample number
func (a *Accumulator) advance() int {
	a.count++
	return a.count
}

// Image converts the buffer to 8-bit RGB after gamma correction
func (a *Accumulator) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(a.pixels[x+y*a.width], gamma))
		}
	}
	return img
}

// vec3ToColor converts a linear color to a gamma corrected 8-bit color
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	if !c.IsFinite() {
		c = core.Vec3{}
	}
	c = c.Clamp(0, 1).GammaCorrect(gamma).Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}
