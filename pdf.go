package synthscan

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDFText pulls plain text out of a PDF payload. The pdf package
// panics on some malformed files, so the whole extraction runs behind a
// recover boundary. Graceful degradation: empty string on any failure.
func (cfg *Config) extractPDFText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic("pdf_text", r)
			}
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	rd, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	out, err := io.ReadAll(rd)
	if err != nil {
		return ""
	}
	return string(out)
}
