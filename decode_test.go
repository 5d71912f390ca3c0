package synthscan

import (
	"errors"
	"image/color"
	"testing"
)

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	t.Run("valid png", func(t *testing.T) {
		t.Parallel()
		data := solidPNG(t, 12, 7, color.Gray{Y: 40})
		d, err := decodeImage(data)
		if err != nil {
			t.Fatalf("decodeImage: %v", err)
		}
		if d.Width != 12 || d.Height != 7 {
			t.Errorf("dimensions = %dx%d, want 12x7", d.Width, d.Height)
		}
		if d.Format != "png" {
			t.Errorf("format = %q, want png", d.Format)
		}
		if d.Mode == "" {
			t.Error("mode must not be empty")
		}
	})

	t.Run("garbage yields ErrUnsupportedImage", func(t *testing.T) {
		t.Parallel()
		_, err := decodeImage([]byte{0x00, 0x01, 0x02})
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("err = %v, want ErrUnsupportedImage", err)
		}
	})

	t.Run("empty payload yields ErrUnsupportedImage", func(t *testing.T) {
		t.Parallel()
		_, err := decodeImage(nil)
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("err = %v, want ErrUnsupportedImage", err)
		}
	})
}

func TestPNGTextChunks(t *testing.T) {
	t.Parallel()

	t.Run("tEXt chunk is extracted", func(t *testing.T) {
		t.Parallel()
		data := withTextChunk(t, solidPNG(t, 4, 4, color.Gray{Y: 1}),
			"parameters", "Steps: 20, Seed: 42")
		info := pngTextChunks(data)
		if info["parameters"] != "Steps: 20, Seed: 42" {
			t.Errorf(`info["parameters"] = %q, want the chunk text`, info["parameters"])
		}
	})

	t.Run("plain png has no text chunks", func(t *testing.T) {
		t.Parallel()
		if info := pngTextChunks(solidPNG(t, 4, 4, color.Gray{Y: 1})); info != nil {
			t.Errorf("info = %v, want nil", info)
		}
	})

	t.Run("non png returns nil", func(t *testing.T) {
		t.Parallel()
		if info := pngTextChunks([]byte("definitely not a png")); info != nil {
			t.Errorf("info = %v, want nil", info)
		}
	})

	t.Run("truncated chunk stream never panics", func(t *testing.T) {
		t.Parallel()
		data := withTextChunk(t, solidPNG(t, 4, 4, color.Gray{Y: 1}), "k", "v")
		for cut := 8; cut < len(data); cut += 7 {
			_ = pngTextChunks(data[:cut])
		}
	})
}

func TestDownscale(t *testing.T) {
	t.Parallel()

	t.Run("small image untouched", func(t *testing.T) {
		t.Parallel()
		img := solidImage(50, 40, color.Gray{Y: 3})
		if got := downscale(img, 200, 200); got != img {
			t.Error("image inside the bound must be returned unchanged")
		}
	})

	t.Run("large image fits the bound and keeps aspect", func(t *testing.T) {
		t.Parallel()
		got := downscale(solidImage(400, 800, color.Gray{Y: 3}), 200, 200)
		b := got.Bounds()
		if b.Dx() > 200 || b.Dy() > 200 {
			t.Errorf("bounds = %v, want within 200x200", b)
		}
		if b.Dy() != 200 || b.Dx() != 100 {
			t.Errorf("bounds = %v, want 100x200 for a 1:2 image", b)
		}
	})
}

func TestCheckEXIFCompleteness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		exif         map[string]string
		wantComplete bool
		wantMissing  int
	}{
		{
			name:         "nil map misses everything",
			exif:         nil,
			wantComplete: false,
			wantMissing:  6,
		},
		{
			name: "full camera set",
			exif: map[string]string{
				"Make": "Canon", "Model": "EOS R5", "DateTimeOriginal": "2024:01:02 03:04:05",
				"LensModel": "RF 50mm", "FNumber": "1.8", "ExposureTime": "1/250",
			},
			wantComplete: true,
			wantMissing:  0,
		},
		{
			name: "DateTime accepted as timestamp fallback",
			exif: map[string]string{
				"Make": "Canon", "Model": "EOS R5", "DateTime": "2024:01:02 03:04:05",
				"LensModel": "RF 50mm", "FNumber": "1.8", "ExposureTime": "1/250",
			},
			wantComplete: true,
			wantMissing:  0,
		},
		{
			name: "missing lens and fnumber",
			exif: map[string]string{
				"Make": "Canon", "Model": "EOS R5", "DateTimeOriginal": "2024:01:02 03:04:05",
				"ExposureTime": "1/250",
			},
			wantComplete: false,
			wantMissing:  2,
		},
		{
			name: "empty value counts as missing",
			exif: map[string]string{
				"Make": "", "Model": "EOS R5", "DateTimeOriginal": "2024:01:02 03:04:05",
				"LensModel": "RF 50mm", "FNumber": "1.8", "ExposureTime": "1/250",
			},
			wantComplete: false,
			wantMissing:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			complete, missing := checkEXIFCompleteness(tc.exif)
			if complete != tc.wantComplete {
				t.Errorf("complete = %v, want %v", complete, tc.wantComplete)
			}
			if len(missing) != tc.wantMissing {
				t.Errorf("missing = %v, want %d entries", missing, tc.wantMissing)
			}
		})
	}
}

func TestExtractEXIFTags_NilAndGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil data", data: nil},
		{name: "empty data", data: []byte{}},
		{name: "garbage data", data: []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := extractEXIFTags(tc.data); got != nil {
				t.Errorf("extractEXIFTags(%v) = %v, want nil", tc.data, got)
			}
		})
	}
}
