package synthscan

import (
	"bytes"
	"fmt"

	"github.com/bep/imagemeta"
)

// extractEXIFTags decodes every EXIF tag from raw image bytes into a
// human-readable-name → value map. Graceful degradation: returns nil on any
// parse failure instead of an error.
func extractEXIFTags(data []byte) map[string]string {
	if len(data) == 0 {
		return nil
	}

	tags := map[string]string{}
	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return true
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if s := tagValueString(ti.Value); s != "" {
				tags[ti.Tag] = s
			}
			return nil
		},
	})
	if err != nil || len(tags) == 0 {
		return nil
	}
	return tags
}

// cameraEXIFFields is the canonical set of tags a camera-originated file is
// expected to carry. DateTimeOriginal accepts DateTime as a fallback.
var cameraEXIFFields = []string{
	"Make", "Model", "DateTimeOriginal", "LensModel", "FNumber", "ExposureTime",
}

// checkEXIFCompleteness reports whether all canonical camera fields are
// present and non-empty, and lists the missing ones.
func checkEXIFCompleteness(exif map[string]string) (complete bool, missing []string) {
	for _, f := range cameraEXIFFields {
		if exif[f] != "" {
			continue
		}
		if f == "DateTimeOriginal" && exif["DateTime"] != "" {
			continue
		}
		missing = append(missing, f)
	}
	return len(missing) == 0, missing
}

// tagValueString renders a tag value as text. EXIF values may be strings,
// numbers, rationals, or lists depending on the tag.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			return tagValueString(val[0])
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
