package synthscan

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Stylometry holds lightweight lexical statistics about a text. All ratios
// default to 0 on empty input; computation never divides by zero.
type Stylometry struct {
	WordCount           int     `json:"word_count"`
	CharCount           int     `json:"char_count"`
	TypeTokenRatio      float64 `json:"type_token_ratio"`
	AvgSentenceLen      float64 `json:"avg_sentence_len"`
	RepetitionTop5Share float64 `json:"repetition_top5_share"`
	StopwordRatio       float64 `json:"stopword_ratio"`
	DigitRatio          float64 `json:"digit_ratio"`
	PunctRatio          float64 `json:"punct_ratio"`
}

// stopWords is a small closed list for the stop-word ratio. It is a style
// signal, not a linguistic resource; completeness is not the point.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "to": true, "in": true, "on": true, "for": true, "with": true,
	"is": true, "are": true, "was": true, "were": true, "it": true,
	"that": true, "this": true, "as": true, "at": true, "by": true, "be": true,
}

// sentenceEndRe splits on terminal punctuation followed by whitespace.
var sentenceEndRe = regexp.MustCompile(`[.!?]+\s`)

// computeStylometry derives the full stylometric profile of text.
func computeStylometry(text string) *Stylometry {
	sty := &Stylometry{CharCount: len([]rune(text))}
	words := tokenize(text)
	sty.WordCount = len(words)
	if sty.CharCount > 0 {
		var digits, punct int
		for _, r := range text {
			switch {
			case unicode.IsDigit(r):
				digits++
			case unicode.IsPunct(r):
				punct++
			}
		}
		sty.DigitRatio = float64(digits) / float64(sty.CharCount)
		sty.PunctRatio = float64(punct) / float64(sty.CharCount)
	}
	if len(words) == 0 {
		return sty
	}

	freq := make(map[string]int, len(words))
	var stops int
	for _, w := range words {
		freq[w]++
		if stopWords[w] {
			stops++
		}
	}
	sty.TypeTokenRatio = float64(len(freq)) / float64(len(words))
	sty.StopwordRatio = float64(stops) / float64(len(words))

	counts := make([]int, 0, len(freq))
	for _, c := range freq {
		counts = append(counts, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	top := 0
	for i, c := range counts {
		if i >= 5 {
			break
		}
		top += c
	}
	sty.RepetitionTop5Share = float64(top) / float64(len(words))

	sentences := sentenceEndRe.Split(strings.TrimSpace(text), -1)
	n := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	sty.AvgSentenceLen = float64(len(words)) / float64(n)
	return sty
}

// tokenize lowercases and splits text into words, trimming surrounding
// punctuation from each token.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
