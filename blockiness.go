package synthscan

import (
	"image"
	"math"
)

// blockinessScore estimates JPEG block-compression artifact strength: the
// mean absolute luminance discontinuity across 8×8 block boundaries minus the
// mean discontinuity at non-boundary offsets, normalized to the 0–255 range.
// Values near zero (or negative) mean no visible compression grid.
func blockinessScore(gray []float64, w, h int) float64 {
	const block = 8
	if w < 2*block || h < 2*block {
		return 0
	}
	var boundarySum, interiorSum float64
	var boundaryN, interiorN int

	// Vertical boundaries (column x-1 → x).
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			d := math.Abs(gray[y*w+x] - gray[y*w+x-1])
			if x%block == 0 {
				boundarySum += d
				boundaryN++
			} else {
				interiorSum += d
				interiorN++
			}
		}
	}
	// Horizontal boundaries (row y-1 → y).
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Abs(gray[y*w+x] - gray[(y-1)*w+x])
			if y%block == 0 {
				boundarySum += d
				boundaryN++
			} else {
				interiorSum += d
				interiorN++
			}
		}
	}
	if boundaryN == 0 || interiorN == 0 {
		return 0
	}
	return (boundarySum/float64(boundaryN) - interiorSum/float64(interiorN)) / 255.0
}

// chromaLumaRatio is the ratio of the average chroma-channel standard
// deviation to the luma standard deviation in YCbCr space. Informational
// only: it appears in details but never feeds the score.
func chromaLumaRatio(img image.Image) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	ys := make([]float64, 0, total)
	cbs := make([]float64, 0, total)
	crs := make([]float64, 0, total)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			yy, cb, cr := rgbToYCbCr(float64(r>>8), float64(g>>8), float64(bl>>8))
			ys = append(ys, yy)
			cbs = append(cbs, cb)
			crs = append(crs, cr)
		}
	}
	lumaStd := math.Sqrt(variance(ys))
	if lumaStd == 0 {
		return 0
	}
	chromaStd := (math.Sqrt(variance(cbs)) + math.Sqrt(variance(crs))) / 2
	return chromaStd / lumaStd
}

// rgbToYCbCr is the JPEG (full-range) color transform.
func rgbToYCbCr(r, g, b float64) (y, cb, cr float64) {
	y = 0.299*r + 0.587*g + 0.114*b
	cb = 128 - 0.168736*r - 0.331264*g + 0.5*b
	cr = 128 + 0.5*r - 0.418688*g - 0.081312*b
	return y, cb, cr
}
