package synthscan

// Verdict is the final categorical output of an analysis.
type Verdict string

// Possible verdicts. VerdictError is reserved for unrecoverable decode
// failures; it is never produced by the scoring rules themselves.
const (
	VerdictSynthetic Verdict = "synthetic"
	VerdictAuthentic Verdict = "authentic"
	VerdictError     Verdict = "error"
)

// SignalSet maps signal names ("entropy", "edge_density", "meta_hits", ...)
// to their extracted values. Keys come from a fixed vocabulary; extractors
// fill the set incrementally and never overwrite each other.
type SignalSet map[string]any

// Contribution records one scoring rule that fired and the delta it applied.
type Contribution struct {
	Rule  string  `json:"rule"`
	Delta float64 `json:"delta"`
}

// Breakdown is the ordered record of rules that fired. Summing the base score
// plus every delta, clamped to [0, 0.98], reproduces the final score exactly.
type Breakdown []Contribution

// Map renders the breakdown as a rule→delta mapping for the details object.
func (b Breakdown) Map() map[string]float64 {
	m := make(map[string]float64, len(b))
	for _, c := range b {
		m[c.Rule] = c.Delta
	}
	return m
}

// AnalysisResult is the sole externally visible artifact of an analysis.
// It serializes to the JSON shape consumed by the transport layer.
type AnalysisResult struct {
	Score   float64   `json:"score"`
	Verdict Verdict   `json:"verdict"`
	Reason  string    `json:"reason"`
	Details SignalSet `json:"details,omitempty"`
}

// errorResult builds the explicit decode-failure result: score 0, verdict
// "error", descriptive reason.
func errorResult(reason string) AnalysisResult {
	return AnalysisResult{Score: 0, Verdict: VerdictError, Reason: reason}
}
