package synthscan

// Rules holds every tuning constant of the additive scorer. The thresholds
// and deltas are heuristic: they were hand-picked, not calibrated against a
// labeled corpus, and carry no statistical guarantee. Treat them as
// configuration, not truth.
type Rules struct {
	// Base is the starting score before any rule fires.
	Base float64
	// ClampMax bounds the final score; the floor is always 0.
	ClampMax float64
	// SyntheticThreshold: verdict is "synthetic" iff score > threshold.
	SyntheticThreshold float64

	// Image rules, in evaluation order.
	MetaHitDelta        float64 // any metadata keyword hit
	OCRHitDelta         float64 // any OCR keyword hit
	LowEntropyMax       float64 // entropy below this → LowEntropyDelta
	LowEntropyDelta     float64
	// SmoothEdgeMax is the edge density guard shared by several rules.
	// edge_density is Sobel-mean normalized by the maximum Sobel magnitude
	// (4·√2·255), not by 255, so values run well below a mean/255 reading;
	// this threshold is tuned to that scale.
	SmoothEdgeMax       float64
	SmoothEntropyMax    float64 // entropy guard shared by several rules
	SmoothDelta         float64 // edge_density < SmoothEdgeMax && entropy < SmoothEntropyMax
	ELAMeanMax          float64 // ela_mean below this → ELADelta
	ELADelta            float64
	UniqueColorMax      float64 // unique_color_ratio below this → UniqueColorDelta
	UniqueColorDelta    float64
	EXIFIncompleteDelta float64 // camera EXIF fields missing
	LaplacianMax        float64 // laplacian_variance guard
	LaplacianDelta      float64 // laplacian < LaplacianMax && edge < SmoothEdgeMax
	FlatBlockMin        float64 // flat_block_ratio above this → FlatBlockDelta
	FlatBlockDelta      float64 // guarded by entropy < SmoothEntropyMax
	BlockinessMax       float64 // blockiness below this → BlockinessDelta
	BlockinessDelta     float64 // guarded by edge, laplacian, and EXIF rules

	// Text rules (PDF and plain-text pipelines).
	TextHitDelta     float64 // any keyword hit in extracted text
	RepetitionMin    float64 // top-5 word share above this ...
	TTRMax           float64 // ... with type-token ratio below this
	RepetitionDelta  float64
	SentenceLenMin   float64 // avg sentence length inside [Min, Max]
	SentenceLenMax   float64
	SentenceLenDelta float64
}

// DefaultRules returns the stock rule set.
func DefaultRules() *Rules {
	return &Rules{
		Base:               0.45,
		ClampMax:           0.98,
		SyntheticThreshold: 0.70,

		MetaHitDelta:        0.35,
		OCRHitDelta:         0.25,
		LowEntropyMax:       5.5,
		LowEntropyDelta:     0.05,
		SmoothEdgeMax:       0.08,
		SmoothEntropyMax:    6.0,
		SmoothDelta:         0.04,
		ELAMeanMax:          3.0,
		ELADelta:            0.03,
		UniqueColorMax:      0.02,
		UniqueColorDelta:    0.04,
		EXIFIncompleteDelta: 0.04,
		LaplacianMax:        15.0,
		LaplacianDelta:      0.02,
		FlatBlockMin:        0.6,
		FlatBlockDelta:      0.03,
		BlockinessMax:       0.02,
		BlockinessDelta:     0.01,

		TextHitDelta:     0.25,
		RepetitionMin:    0.25,
		TTRMax:           0.45,
		RepetitionDelta:  0.06,
		SentenceLenMin:   12,
		SentenceLenMax:   28,
		SentenceLenDelta: 0.01,
	}
}

// ImageSignals collects every extractor output for the image pipeline.
type ImageSignals struct {
	MetaHits          []string
	OCRHits           []string
	Entropy           float64
	EdgeDensity       float64
	ELAMean           float64
	UniqueColorRatio  float64
	EXIFComplete      bool
	EXIFMissing       []string
	LaplacianVariance float64
	FlatBlockRatio    float64
	Blockiness        float64
	BrightnessMean    float64
	BrightnessStd     float64
	SaturationMean    float64
	SaturationStd     float64
	GraySkewness      float64
	DarkRatio         float64
	BrightRatio       float64
	ChromaLumaRatio   float64 // informational only, never scored
}

// ScoreImage folds the fixed, ordered image rule set over sig. Rules are
// independent and additive; the order only matters for breakdown bookkeeping.
func (r *Rules) ScoreImage(sig *ImageSignals) (float64, Breakdown) {
	score := r.Base
	bd := Breakdown{}
	apply := func(name string, delta float64) {
		score += delta
		bd = append(bd, Contribution{Rule: name, Delta: delta})
	}

	if len(sig.MetaHits) > 0 {
		apply("metadata_hits", r.MetaHitDelta)
	}
	if len(sig.OCRHits) > 0 {
		apply("ocr_hits", r.OCRHitDelta)
	}
	if sig.Entropy < r.LowEntropyMax {
		apply("low_entropy", r.LowEntropyDelta)
	}
	if sig.EdgeDensity < r.SmoothEdgeMax && sig.Entropy < r.SmoothEntropyMax {
		apply("smooth_texture", r.SmoothDelta)
	}
	if sig.ELAMean < r.ELAMeanMax {
		apply("low_ela", r.ELADelta)
	}
	if sig.UniqueColorRatio < r.UniqueColorMax {
		apply("low_color_diversity", r.UniqueColorDelta)
	}
	if !sig.EXIFComplete {
		apply("exif_incomplete", r.EXIFIncompleteDelta)
	}
	if sig.LaplacianVariance < r.LaplacianMax && sig.EdgeDensity < r.SmoothEdgeMax {
		apply("low_sharpness", r.LaplacianDelta)
	}
	if sig.FlatBlockRatio > r.FlatBlockMin && sig.Entropy < r.SmoothEntropyMax {
		apply("flat_blocks", r.FlatBlockDelta)
	}
	if sig.Blockiness < r.BlockinessMax && sig.EdgeDensity < r.SmoothEdgeMax &&
		sig.LaplacianVariance < r.LaplacianMax && !sig.EXIFComplete {
		apply("weak_blockiness", r.BlockinessDelta)
	}

	return r.clamp(score), bd
}

// ScoreText folds the reduced text rule set over keyword hits and stylometry.
func (r *Rules) ScoreText(hits []string, sty *Stylometry) (float64, Breakdown) {
	score := r.Base
	bd := Breakdown{}
	apply := func(name string, delta float64) {
		score += delta
		bd = append(bd, Contribution{Rule: name, Delta: delta})
	}

	if len(hits) > 0 {
		apply("keyword_hits", r.TextHitDelta)
	}
	if sty != nil {
		if sty.RepetitionTop5Share > r.RepetitionMin && sty.TypeTokenRatio < r.TTRMax {
			apply("repetitive_wording", r.RepetitionDelta)
		}
		if sty.AvgSentenceLen >= r.SentenceLenMin && sty.AvgSentenceLen <= r.SentenceLenMax {
			apply("uniform_sentences", r.SentenceLenDelta)
		}
	}

	return r.clamp(score), bd
}

// VerdictFor thresholds a score. The boundary itself is authentic:
// score must strictly exceed the threshold to be called synthetic.
func (r *Rules) VerdictFor(score float64) Verdict {
	if score > r.SyntheticThreshold {
		return VerdictSynthetic
	}
	return VerdictAuthentic
}

func (r *Rules) clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > r.ClampMax {
		return r.ClampMax
	}
	return score
}
