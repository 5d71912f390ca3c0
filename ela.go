package synthscan

import (
	"bytes"
	"image"
	"image/jpeg"
)

// elaQuality is the fixed quality for the error-level-analysis re-encode.
const elaQuality = 90

// elaMean re-encodes img through lossy JPEG at a fixed quality and returns
// the mean absolute grayscale difference against the original on a 0–255
// scale. Camera JPEGs carry compression history and show larger differences;
// already-smooth synthetic content re-encodes almost losslessly.
// Neutral default 0 on any encode/decode failure.
func elaMean(img image.Image) float64 {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: elaQuality}); err != nil {
		return 0
	}
	re, err := jpeg.Decode(&buf)
	if err != nil {
		return 0
	}
	orig, w, h := grayValues(img)
	enc, w2, h2 := grayValues(re)
	if w != w2 || h != h2 || len(orig) == 0 {
		return 0
	}
	var sum float64
	for i := range orig {
		d := orig[i] - enc[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(orig))
}
