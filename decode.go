package synthscan

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned when the payload cannot be decoded as any
// registered raster format.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image data")

// DecodedImage is the in-memory raster decoding of an uploaded payload.
// It is derived once per request; extractors read it without mutating it.
type DecodedImage struct {
	Image  image.Image
	Width  int
	Height int
	Format string            // registered decoder name: "png", "jpeg", ...
	Mode   string            // color model: "RGBA", "Gray", "YCbCr", ...
	Info   map[string]string // free-form embedded text (PNG tEXt/zTXt/iTXt)
	EXIF   map[string]string // decoded EXIF tags, human-readable name → value
}

// decodeImage decodes raw bytes into a DecodedImage, pulling PNG text chunks
// and EXIF tags alongside the raster. Returns ErrUnsupportedImage (wrapped)
// when no registered decoder accepts the payload.
func decodeImage(data []byte) (*DecodedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Join(ErrUnsupportedImage, err)
	}
	b := img.Bounds()
	d := &DecodedImage{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
		Mode:   colorModeString(img),
		EXIF:   extractEXIFTags(data),
	}
	if format == "png" {
		d.Info = pngTextChunks(data)
	}
	return d, nil
}

func colorModeString(img image.Image) string {
	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model:
		return "RGBA"
	case color.NRGBAModel, color.NRGBA64Model:
		return "NRGBA"
	case color.GrayModel, color.Gray16Model:
		return "Gray"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := img.ColorModel().(color.Palette); ok {
		return "Paletted"
	}
	return "RGBA"
}

// maxTextChunkBytes caps how much embedded text is read from a single PNG
// chunk; generation tools write prompts here, not megabytes.
const maxTextChunkBytes = 64 * 1024

// pngTextChunks walks the PNG chunk stream and collects tEXt, zTXt, and iTXt
// entries as keyword → text. Malformed or oversized chunks are skipped;
// never returns an error.
func pngTextChunks(data []byte) map[string]string {
	const sigLen = 8
	if len(data) < sigLen || !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return nil
	}
	info := map[string]string{}
	pos := sigLen
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		body := pos + 8
		next := body + length + 4 // payload + CRC
		if length < 0 || next > len(data) || next < pos {
			break
		}
		if length <= maxTextChunkBytes {
			chunk := data[body : body+length]
			switch typ {
			case "tEXt":
				if k, v, ok := parseTEXT(chunk); ok {
					info[k] = v
				}
			case "zTXt":
				if k, v, ok := parseZTXT(chunk); ok {
					info[k] = v
				}
			case "iTXt":
				if k, v, ok := parseITXT(chunk); ok {
					info[k] = v
				}
			}
		}
		if typ == "IEND" {
			break
		}
		pos = next
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

// parseTEXT splits a tEXt chunk: keyword, NUL, latin-1 text.
func parseTEXT(chunk []byte) (string, string, bool) {
	i := bytes.IndexByte(chunk, 0)
	if i <= 0 {
		return "", "", false
	}
	return string(chunk[:i]), string(chunk[i+1:]), true
}

// parseZTXT splits a zTXt chunk: keyword, NUL, compression method, zlib text.
func parseZTXT(chunk []byte) (string, string, bool) {
	i := bytes.IndexByte(chunk, 0)
	if i <= 0 || i+2 > len(chunk) || chunk[i+1] != 0 {
		return "", "", false
	}
	text, ok := inflate(chunk[i+2:])
	if !ok {
		return "", "", false
	}
	return string(chunk[:i]), text, true
}

// parseITXT splits an iTXt chunk: keyword, NUL, compression flag, compression
// method, language tag, NUL, translated keyword, NUL, UTF-8 text.
func parseITXT(chunk []byte) (string, string, bool) {
	i := bytes.IndexByte(chunk, 0)
	if i <= 0 || i+3 > len(chunk) {
		return "", "", false
	}
	keyword := string(chunk[:i])
	compressed := chunk[i+1] == 1
	rest := chunk[i+3:]
	// Skip language tag and translated keyword.
	for range 2 {
		j := bytes.IndexByte(rest, 0)
		if j < 0 {
			return "", "", false
		}
		rest = rest[j+1:]
	}
	if compressed {
		text, ok := inflate(rest)
		if !ok {
			return "", "", false
		}
		return keyword, text, true
	}
	return keyword, string(rest), true
}

func inflate(data []byte) (string, bool) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxTextChunkBytes))
	if err != nil {
		return "", false
	}
	return string(out), true
}

// downscale resizes img so neither dimension exceeds maxW×maxH, preserving
// aspect ratio. Images already inside the bound are returned unchanged.
func downscale(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// buildMetadataText concatenates the free-form info block and decoded EXIF
// tags as "key: value" lines for keyword scanning.
func buildMetadataText(d *DecodedImage) string {
	var sb strings.Builder
	for _, m := range []map[string]string{d.Info, d.EXIF} {
		for k, v := range m {
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
