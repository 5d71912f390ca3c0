package synthscan

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// imageExts are extensions routed to the raster image pipeline.
var imageExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"bmp": true, "webp": true, "heic": true, "heif": true,
}

// docExts are document extensions with no real analysis path; they get the
// mock branch with a type-specific rationale.
var docExts = map[string]bool{
	"doc": true, "docx": true, "ppt": true, "pptx": true,
}

// Analyze scores a file payload and returns the result record. Routing is a
// pure function of the filename's lowercased trailing extension. Analyze
// never returns an error: decode failures become an "error" verdict, and
// every extractor failure degrades to its neutral default.
func (cfg *Config) Analyze(ctx context.Context, data []byte, filename string) AnalysisResult {
	cfg.defaults()

	ext := trailingExt(filename)
	switch {
	case imageExts[ext]:
		return cfg.analyzeImage(ctx, data)
	case ext == "pdf":
		return cfg.analyzePDF(data)
	case ext == "txt":
		return cfg.analyzePlainText(data)
	case docExts[ext]:
		reason := "Document analyzed (mock). Linguistic patterns assessed."
		if ext == "ppt" || ext == "pptx" {
			reason = "Presentation analyzed (mock). Structure and content assessed."
		}
		return cfg.mockResult(0.3, 0.95, reason)
	default:
		return cfg.mockResult(0.4, 0.9, "Generic file analyzed (mock).")
	}
}

// trailingExt returns the lowercased text after the last '.' in the final
// path segment of name, or "" when there is no dot. Uploaded filenames may
// carry directory prefixes (some browsers send full paths).
func trailingExt(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// analyzeImage runs the full image pipeline: decode, metadata and OCR keyword
// scans, the pixel-signal battery, scoring, and the rationale.
func (cfg *Config) analyzeImage(ctx context.Context, data []byte) AnalysisResult {
	d, err := decodeImage(data)
	if err != nil {
		return errorResult(fmt.Sprintf("Invalid image file: %v", err))
	}

	sig := &ImageSignals{}

	// Metadata keyword scan (PNG text chunks + EXIF tags as "key: value").
	cfg.recovered("meta_hits", func() {
		sig.MetaHits = FindKeywordHits(buildMetadataText(d))
	})

	// OCR keyword scan. A nil or failing engine yields empty text.
	var ocrText string
	cfg.recovered("ocr", func() {
		if cfg.OCR != nil {
			ocrText, _ = cfg.OCR.Recognize(ctx, data)
		}
	})
	sig.OCRHits = FindKeywordHits(ocrText)

	// Pixel-signal battery. Each extractor recovers to its neutral default;
	// a failing extractor never aborts the pipeline.
	gray, w, h := grayValues(d.Image)
	cfg.recovered("entropy", func() { sig.Entropy = shannonEntropy(gray) })
	cfg.recovered("edge_density", func() { sig.EdgeDensity = edgeDensity(gray, w, h) })
	cfg.recovered("ela_mean", func() { sig.ELAMean = elaMean(d.Image) })
	cfg.recovered("unique_color_ratio", func() { sig.UniqueColorRatio = uniqueColorRatio(d.Image) })
	cfg.recovered("exif_completeness", func() {
		sig.EXIFComplete, sig.EXIFMissing = checkEXIFCompleteness(d.EXIF)
	})
	cfg.recovered("laplacian_variance", func() { sig.LaplacianVariance = laplacianVariance(gray, w, h) })
	cfg.recovered("flat_block_ratio", func() { sig.FlatBlockRatio = flatBlockRatio(d.Image) })
	cfg.recovered("gray_stats", func() {
		sig.BrightnessMean, sig.BrightnessStd, sig.GraySkewness, sig.DarkRatio, sig.BrightRatio = grayStats(gray)
	})
	cfg.recovered("saturation_stats", func() {
		sig.SaturationMean, sig.SaturationStd = saturationStats(d.Image)
	})
	cfg.recovered("blockiness", func() { sig.Blockiness = blockinessScore(gray, w, h) })
	cfg.recovered("chroma_luma_ratio", func() { sig.ChromaLumaRatio = chromaLumaRatio(d.Image) })

	var dhash string
	cfg.recovered("dhash", func() { dhash = perceptualHash(d.Image) })

	score, bd := cfg.Rules.ScoreImage(sig)
	return AnalysisResult{
		Score:   score,
		Verdict: cfg.Rules.VerdictFor(score),
		Reason:  imageRationale(d, sig, ocrText),
		Details: imageDetails(cfg.Rules, d, sig, ocrText, dhash, bd, score),
	}
}

// analyzePDF extracts text and runs the reduced text rule set.
func (cfg *Config) analyzePDF(data []byte) AnalysisResult {
	text := cfg.extractPDFText(data)
	var hits []string
	if text != "" {
		hits = FindKeywordHits(text)
	}
	sty := computeStylometry(text)

	score, bd := cfg.Rules.ScoreText(hits, sty)
	return AnalysisResult{
		Score:   score,
		Verdict: cfg.Rules.VerdictFor(score),
		Reason:  textRationale("PDF analyzed.", text, hits, sty, "No text could be extracted from the PDF."),
		Details: textDetails(cfg.Rules, text, hits, sty, false, bd, score),
	}
}

// analyzePlainText decodes the payload as UTF-8 text and runs the text rules,
// including the raw-text-only digit and punctuation ratios.
func (cfg *Config) analyzePlainText(data []byte) AnalysisResult {
	text := strings.ToValidUTF8(string(data), "")
	var hits []string
	if text != "" {
		hits = FindKeywordHits(text)
	}
	sty := computeStylometry(text)

	score, bd := cfg.Rules.ScoreText(hits, sty)
	return AnalysisResult{
		Score:   score,
		Verdict: cfg.Rules.VerdictFor(score),
		Reason:  textRationale("Plain text analyzed.", text, hits, sty, "The file contains no readable text."),
		Details: textDetails(cfg.Rules, text, hits, sty, true, bd, score),
	}
}

// mockResult draws a uniform score in [lo, hi] with a static rationale.
// Explicitly NOT a real analysis; callers must not treat it as signal.
func (cfg *Config) mockResult(lo, hi float64, reason string) AnalysisResult {
	score := lo + rand.Float64()*(hi-lo)
	return AnalysisResult{
		Score:   score,
		Verdict: cfg.Rules.VerdictFor(score),
		Reason:  reason,
	}
}
