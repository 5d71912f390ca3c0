package synthscan

import (
	"image"
	"math"
)

// grayValues converts img to 0–255 luminance values, row-major.
func grayValues(img image.Image) ([]float64, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// 16-bit channels → 0–255 luma (ITU-R BT.601 weights).
			luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 257.0
			out = append(out, luma)
		}
	}
	return out, w, h
}

// shannonEntropy computes the base-2 entropy of the grayscale intensity
// histogram. A single-level image yields 0; 8-bit noise approaches 8.
func shannonEntropy(gray []float64) float64 {
	if len(gray) == 0 {
		return 0
	}
	var hist [256]int
	for _, v := range gray {
		i := int(v)
		if i < 0 {
			i = 0
		} else if i > 255 {
			i = 255
		}
		hist[i]++
	}
	total := float64(len(gray))
	entropy := 0.0
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// edgeDensity is the mean Sobel gradient magnitude over the grayscale image,
// normalized to [0, 1] by the maximum Sobel magnitude (4·√2·255). The
// Rules.SmoothEdgeMax guard is tuned to this scale. Neutral default 0 for
// degenerate dimensions.
func edgeDensity(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := func(dx, dy int) float64 { return gray[(y+dy)*w+(x+dx)] }
			gx := -p(-1, -1) - 2*p(-1, 0) - p(-1, 1) + p(1, -1) + 2*p(1, 0) + p(1, 1)
			gy := -p(-1, -1) - 2*p(0, -1) - p(1, -1) + p(-1, 1) + 2*p(0, 1) + p(1, 1)
			sum += math.Sqrt(gx*gx + gy*gy)
		}
	}
	mean := sum / float64((w-2)*(h-2))
	// Max Sobel magnitude is 4*sqrt(2)*255; anything near that is pure noise.
	norm := mean / (4 * math.Sqrt2 * 255)
	if norm > 1 {
		norm = 1
	}
	return norm
}

// laplacianVariance is the variance of a 3×3 discrete Laplacian convolution
// over grayscale, a standard sharpness proxy. Low values mean blur.
func laplacianVariance(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	resp := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := gray[y*w+x]
			lap := gray[(y-1)*w+x] + gray[(y+1)*w+x] + gray[y*w+x-1] + gray[y*w+x+1] - 4*c
			resp = append(resp, lap)
		}
	}
	return variance(resp)
}

// flatBlockVarThreshold is the intensity variance below which a 16×16 block
// counts as flat.
const flatBlockVarThreshold = 5.0

// flatBlockRatio is the fraction of non-overlapping 16×16 grayscale blocks
// (after downscale to at most 256×256) whose variance falls below the flat
// threshold. Over-smoothed renders produce large flat regions.
func flatBlockRatio(img image.Image) float64 {
	small := downscale(img, 256, 256)
	gray, w, h := grayValues(small)
	const block = 16
	if w < block || h < block {
		return 0
	}
	var flat, total int
	for by := 0; by+block <= h; by += block {
		for bx := 0; bx+block <= w; bx += block {
			vals := make([]float64, 0, block*block)
			for y := by; y < by+block; y++ {
				for x := bx; x < bx+block; x++ {
					vals = append(vals, gray[y*w+x])
				}
			}
			if variance(vals) < flatBlockVarThreshold {
				flat++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(flat) / float64(total)
}

// uniqueColorRatio is the ratio of distinct colors to pixel count after
// downscaling to at most 200×200. Flat synthetic graphics sit near zero.
func uniqueColorRatio(img image.Image) float64 {
	small := downscale(img, 200, 200)
	b := small.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	seen := make(map[uint32]struct{}, total)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := small.At(x, y).RGBA()
			key := (r>>8)<<16 | (g>>8)<<8 | bl>>8
			seen[key] = struct{}{}
		}
	}
	return float64(len(seen)) / float64(total)
}

// Grayscale intensity thresholds for the dark/bright pixel ratios.
const (
	darkPixelMax   = 30
	brightPixelMin = 225
)

// grayStats computes descriptive statistics over the grayscale channel:
// mean, standard deviation, skewness, and dark/bright pixel ratios.
func grayStats(gray []float64) (mean, std, skewness, darkRatio, brightRatio float64) {
	n := float64(len(gray))
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	var sum float64
	var dark, bright int
	for _, v := range gray {
		sum += v
		if v < darkPixelMax {
			dark++
		}
		if v > brightPixelMin {
			bright++
		}
	}
	mean = sum / n
	var m2, m3 float64
	for _, v := range gray {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	std = math.Sqrt(m2)
	if std > 0 {
		skewness = m3 / (std * std * std)
	}
	return mean, std, skewness, float64(dark) / n, float64(bright) / n
}

// saturationStats computes mean and standard deviation of the HSV saturation
// channel on a 0–255 scale.
func saturationStats(img image.Image) (mean, std float64) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0, 0
	}
	sats := make([]float64, 0, total)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			rf, gf, bf := float64(r>>8), float64(g>>8), float64(bl>>8)
			maxC := math.Max(rf, math.Max(gf, bf))
			minC := math.Min(rf, math.Min(gf, bf))
			s := 0.0
			if maxC > 0 {
				s = (maxC - minC) / maxC * 255
			}
			sats = append(sats, s)
		}
	}
	m := meanOf(sats)
	return m, math.Sqrt(variance(sats))
}

func meanOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func variance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := meanOf(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(vals))
}
