package synthscan

import (
	"image"

	"github.com/corona10/goimagehash"
)

// perceptualHash returns the difference-hash fingerprint of img as a string
// ("d:..."). Informational detail only; it never feeds the score. Graceful
// degradation: empty string when hashing fails.
func perceptualHash(img image.Image) string {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return ""
	}
	return hash.ToString()
}
