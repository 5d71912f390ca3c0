package synthscan

import (
	"fmt"
	"strings"
)

const (
	ocrPreviewRunes = 300
	metaValueRunes  = 200
)

// entropyLabel classifies entropy for the rationale: low ≤ 6.0, medium ≤ 7.0,
// high above that.
func entropyLabel(entropy float64) string {
	switch {
	case entropy > 7.0:
		return "high"
	case entropy > 6.0:
		return "medium"
	default:
		return "low"
	}
}

// imageRationale renders the image pipeline's signals as one prose string,
// one short clause per signal group, in a fixed order.
func imageRationale(d *DecodedImage, sig *ImageSignals, ocrText string) string {
	clauses := []string{
		fmt.Sprintf("Examined %dx%d image in %s mode.", d.Width, d.Height, d.Mode),
		fmt.Sprintf("Signal entropy: %.2f (%s).", sig.Entropy, entropyLabel(sig.Entropy)),
	}

	if len(sig.MetaHits) > 0 {
		clauses = append(clauses, fmt.Sprintf("Metadata indicators found: %s.",
			strings.Join(uniqueSorted(sig.MetaHits), ", ")))
	} else {
		clauses = append(clauses, "No explicit AI markers in EXIF or embedded text.")
	}

	switch {
	case len(sig.OCRHits) > 0:
		clauses = append(clauses, fmt.Sprintf("OCR detected AI-related terms: %s.",
			strings.Join(uniqueSorted(sig.OCRHits), ", ")))
	case ocrText != "":
		clauses = append(clauses, "OCR text present but no AI-specific keywords matched.")
	default:
		clauses = append(clauses, "No visible text detected via OCR.")
	}

	clauses = append(clauses, fmt.Sprintf(
		"Surface statistics: edge density %.3f, sharpness %.1f, flat blocks %.0f%%, ELA %.1f.",
		sig.EdgeDensity, sig.LaplacianVariance, sig.FlatBlockRatio*100, sig.ELAMean))

	if sig.EXIFComplete {
		clauses = append(clauses, "Camera EXIF fields present.")
	} else {
		clauses = append(clauses, fmt.Sprintf("Camera EXIF incomplete (missing: %s).",
			strings.Join(sig.EXIFMissing, ", ")))
	}

	return strings.Join(clauses, " ")
}

// imageDetails exposes every raw signal value plus the score breakdown for
// machine consumers that want more than the prose summary.
func imageDetails(r *Rules, d *DecodedImage, sig *ImageSignals, ocrText, dhash string, bd Breakdown, score float64) SignalSet {
	meta := map[string]string{}
	for _, m := range []map[string]string{d.Info, d.EXIF} {
		for k, v := range m {
			meta[k] = truncate(v, metaValueRunes)
		}
	}

	return SignalSet{
		"meta_hits":          uniqueSorted(sig.MetaHits),
		"ocr_hits":           uniqueSorted(sig.OCRHits),
		"ocr_preview":        preview(ocrText),
		"ocr_full":           ocrText,
		"entropy":            sig.Entropy,
		"edge_density":       sig.EdgeDensity,
		"ela_mean":           sig.ELAMean,
		"unique_color_ratio": sig.UniqueColorRatio,
		"exif_complete":      sig.EXIFComplete,
		"exif_missing":       sig.EXIFMissing,
		"laplacian_variance": sig.LaplacianVariance,
		"flat_block_ratio":   sig.FlatBlockRatio,
		"blockiness":         sig.Blockiness,
		"brightness_mean":    sig.BrightnessMean,
		"brightness_std":     sig.BrightnessStd,
		"saturation_mean":    sig.SaturationMean,
		"saturation_std":     sig.SaturationStd,
		"gray_skewness":      sig.GraySkewness,
		"dark_ratio":         sig.DarkRatio,
		"bright_ratio":       sig.BrightRatio,
		"chroma_luma_ratio":  sig.ChromaLumaRatio,
		"dhash":              dhash,
		"width":              d.Width,
		"height":             d.Height,
		"mode":               d.Mode,
		"format":             d.Format,
		"meta":               meta,
		"base":               r.Base,
		"breakdown":          bd.Map(),
		"score":              score,
	}
}

// textRationale renders the text pipeline's findings as prose. emptyNote is
// the clause used when no text at all was recovered.
func textRationale(lead, text string, hits []string, sty *Stylometry, emptyNote string) string {
	clauses := []string{lead}
	switch {
	case len(hits) > 0:
		clauses = append(clauses, fmt.Sprintf("Detected AI-related terms in text: %s.",
			strings.Join(uniqueSorted(hits), ", ")))
	case text != "":
		clauses = append(clauses, "Text extracted but no AI-specific keywords matched.")
	default:
		clauses = append(clauses, emptyNote)
	}
	if sty != nil && sty.WordCount > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"Stylometry: %d words, lexical diversity %.2f, avg sentence length %.1f.",
			sty.WordCount, sty.TypeTokenRatio, sty.AvgSentenceLen))
	}
	return strings.Join(clauses, " ")
}

// textDetails exposes text signals. Digit/punctuation ratios are raw-text
// only and omitted for OCR/PDF-derived text.
func textDetails(r *Rules, text string, hits []string, sty *Stylometry, raw bool, bd Breakdown, score float64) SignalSet {
	details := SignalSet{
		"ocr_hits":    uniqueSorted(hits),
		"ocr_preview": preview(text),
		"ocr_full":    text,
		"base":        r.Base,
		"breakdown":   bd.Map(),
		"score":       score,
	}
	if sty != nil {
		details["word_count"] = sty.WordCount
		details["char_count"] = sty.CharCount
		details["type_token_ratio"] = sty.TypeTokenRatio
		details["avg_sentence_len"] = sty.AvgSentenceLen
		details["repetition_top5_share"] = sty.RepetitionTop5Share
		details["stopword_ratio"] = sty.StopwordRatio
		if raw {
			details["digit_ratio"] = sty.DigitRatio
			details["punct_ratio"] = sty.PunctRatio
		}
	}
	return details
}

// preview truncates recovered text for the details object, appending an
// ellipsis when anything was cut.
func preview(text string) string {
	if text == "" {
		return ""
	}
	return truncate(text, ocrPreviewRunes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
