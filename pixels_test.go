package synthscan

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// checkerboard alternates two gray levels per pixel.
func checkerboard(w, h int, a, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := a
			if (x+y)%2 == 1 {
				v = b
			}
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestShannonEntropy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gray []float64
		want float64
	}{
		{name: "empty input neutral default", gray: nil, want: 0},
		{name: "single level", gray: []float64{128, 128, 128, 128}, want: 0},
		{name: "two equal levels", gray: []float64{0, 255, 0, 255}, want: 1},
		{name: "four equal levels", gray: []float64{0, 64, 128, 192}, want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := shannonEntropy(tc.gray)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("shannonEntropy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEdgeDensity(t *testing.T) {
	t.Parallel()

	if got := edgeDensity(nil, 0, 0); got != 0 {
		t.Errorf("edgeDensity(empty) = %v, want 0", got)
	}
	if got := edgeDensity([]float64{1, 2, 3, 4}, 2, 2); got != 0 {
		t.Errorf("edgeDensity(too small) = %v, want 0", got)
	}

	flat, w, h := grayValues(solidImage(32, 32, color.Gray{Y: 100}))
	if got := edgeDensity(flat, w, h); got != 0 {
		t.Errorf("edgeDensity(solid) = %v, want 0", got)
	}

	// Vertical stripes of width 2: half the columns sit on a hard edge.
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := uint8(0)
			if (x/2)%2 == 1 {
				v = 255
			}
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	striped, w, h := grayValues(img)
	got := edgeDensity(striped, w, h)
	if got <= 0.2 || got > 1 {
		t.Errorf("edgeDensity(stripes) = %v, want in (0.2, 1]", got)
	}
}

func TestLaplacianVariance(t *testing.T) {
	t.Parallel()

	if got := laplacianVariance(nil, 0, 0); got != 0 {
		t.Errorf("laplacianVariance(empty) = %v, want 0", got)
	}
	flat, w, h := grayValues(solidImage(16, 16, color.Gray{Y: 77}))
	if got := laplacianVariance(flat, w, h); got != 0 {
		t.Errorf("laplacianVariance(solid) = %v, want 0", got)
	}
	busy, w, h := grayValues(checkerboard(16, 16, 0, 255))
	if got := laplacianVariance(busy, w, h); got < 100 {
		t.Errorf("laplacianVariance(checkerboard) = %v, want large", got)
	}
}

func TestFlatBlockRatio(t *testing.T) {
	t.Parallel()

	if got := flatBlockRatio(solidImage(8, 8, color.Gray{Y: 10})); got != 0 {
		t.Errorf("flatBlockRatio(smaller than one block) = %v, want 0", got)
	}
	if got := flatBlockRatio(solidImage(300, 300, color.Gray{Y: 10})); got != 1 {
		t.Errorf("flatBlockRatio(large solid) = %v, want 1", got)
	}
	if got := flatBlockRatio(checkerboard(64, 64, 0, 255)); got != 0 {
		t.Errorf("flatBlockRatio(checkerboard) = %v, want 0", got)
	}
}

func TestUniqueColorRatio(t *testing.T) {
	t.Parallel()

	if got := uniqueColorRatio(solidImage(50, 50, color.RGBA{R: 9, G: 9, B: 9, A: 255})); got != 1.0/2500 {
		t.Errorf("uniqueColorRatio(solid 50x50) = %v, want %v", got, 1.0/2500)
	}
	if got := uniqueColorRatio(checkerboard(50, 50, 0, 255)); got != 2.0/2500 {
		t.Errorf("uniqueColorRatio(two-color 50x50) = %v, want %v", got, 2.0/2500)
	}
}

func TestGrayStats(t *testing.T) {
	t.Parallel()

	mean, std, skew, dark, bright := grayStats(nil)
	if mean != 0 || std != 0 || skew != 0 || dark != 0 || bright != 0 {
		t.Errorf("grayStats(empty) = %v %v %v %v %v, want all 0", mean, std, skew, dark, bright)
	}

	mean, std, skew, dark, bright = grayStats([]float64{10, 10, 250, 250})
	if mean != 130 {
		t.Errorf("mean = %v, want 130", mean)
	}
	if std != 120 {
		t.Errorf("std = %v, want 120", std)
	}
	if skew != 0 {
		t.Errorf("skewness = %v, want 0 for a symmetric distribution", skew)
	}
	if dark != 0.5 {
		t.Errorf("darkRatio = %v, want 0.5", dark)
	}
	if bright != 0.5 {
		t.Errorf("brightRatio = %v, want 0.5", bright)
	}

	// Long right tail → positive skew.
	_, _, skew, _, _ = grayStats([]float64{10, 10, 10, 10, 10, 10, 10, 240})
	if skew <= 0 {
		t.Errorf("skewness = %v, want positive for right-tailed values", skew)
	}
}

func TestSaturationStats(t *testing.T) {
	t.Parallel()

	mean, std := saturationStats(solidImage(10, 10, color.Gray{Y: 128}))
	if mean != 0 || std != 0 {
		t.Errorf("saturationStats(gray) = %v, %v, want 0, 0", mean, std)
	}

	mean, std = saturationStats(solidImage(10, 10, color.RGBA{R: 255, A: 255}))
	if mean != 255 {
		t.Errorf("saturationStats(pure red).mean = %v, want 255", mean)
	}
	if std != 0 {
		t.Errorf("saturationStats(pure red).std = %v, want 0", std)
	}
}

func TestELAMean(t *testing.T) {
	t.Parallel()

	// Solid gray survives a JPEG round trip almost untouched.
	if got := elaMean(solidImage(32, 32, color.Gray{Y: 128})); got >= 3.0 {
		t.Errorf("elaMean(solid) = %v, want < 3.0", got)
	}
	// Per-pixel checkerboard is the worst case for JPEG.
	if got := elaMean(checkerboard(32, 32, 0, 255)); got <= 3.0 {
		t.Errorf("elaMean(checkerboard) = %v, want > 3.0", got)
	}
}

func TestBlockinessScore(t *testing.T) {
	t.Parallel()

	if got := blockinessScore(nil, 0, 0); got != 0 {
		t.Errorf("blockinessScore(empty) = %v, want 0", got)
	}
	small, w, h := grayValues(solidImage(8, 8, color.Gray{Y: 1}))
	if got := blockinessScore(small, w, h); got != 0 {
		t.Errorf("blockinessScore(below two blocks) = %v, want 0", got)
	}
	flat, w, h := grayValues(solidImage(64, 64, color.Gray{Y: 200}))
	if got := blockinessScore(flat, w, h); got != 0 {
		t.Errorf("blockinessScore(solid) = %v, want 0", got)
	}

	// A hard 8×8 grid: every block boundary jumps, interiors are flat.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(50)
			if ((x/8)+(y/8))%2 == 1 {
				v = 200
			}
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	gray, w, h := grayValues(img)
	if got := blockinessScore(gray, w, h); got <= 0.02 {
		t.Errorf("blockinessScore(8x8 grid) = %v, want above 0.02", got)
	}
}

func TestChromaLumaRatio(t *testing.T) {
	t.Parallel()

	// No luma variation → neutral 0, never a division by zero.
	if got := chromaLumaRatio(solidImage(10, 10, color.RGBA{R: 255, A: 255})); got != 0 {
		t.Errorf("chromaLumaRatio(solid) = %v, want 0", got)
	}
	// Grayscale gradient has luma variance but zero chroma variance.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.Gray{Y: uint8(x * 16)})
		}
	}
	if got := chromaLumaRatio(img); got > 1e-6 {
		t.Errorf("chromaLumaRatio(gray gradient) = %v, want ~0", got)
	}
}

func TestPerceptualHash(t *testing.T) {
	t.Parallel()

	a := perceptualHash(solidImage(32, 32, color.Gray{Y: 100}))
	if a == "" {
		t.Fatal("perceptualHash returned empty for a valid image")
	}
	b := perceptualHash(solidImage(32, 32, color.Gray{Y: 100}))
	if a != b {
		t.Errorf("perceptualHash not deterministic: %q vs %q", a, b)
	}
}
