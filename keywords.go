package synthscan

import (
	"regexp"
	"sort"
	"strings"
)

// AIKeywords are case-insensitive substrings that indicate a generation tool
// or generation metadata when found in embedded metadata or recognized text.
var AIKeywords = []string{
	// Common tools and pipelines
	"stable diffusion", "sdxl", "automatic1111", "a1111", "comfyui", "invokeai",
	"midjourney", "dall-e", "dalle", "openai image", "novelai", "leonardo", "firefly",
	"runwayml", "ideogram", "craiyon", "image creator", "bing image creator",
	// Generic markers
	"ai-generated", "ai generated", "generative", "diffusion", "latent",
	// Diffusion-pipeline metadata fields
	"parameters:", "negative prompt:", "sampler", "cfg scale", "steps:", "seed:",
}

// promptFieldRe matches the "prompt:" / "negative prompt:" field pattern
// typical of diffusion-tool metadata, tolerant of extra whitespace.
var promptFieldRe = regexp.MustCompile(`\b(prompt|negative\s+prompt)\s*:\s*`)

// FindKeywordHits returns every AIKeywords entry found as a case-insensitive
// substring of text, plus the synthetic hit "prompt field" when the
// prompt-field pattern matches. Deterministic and side-effect-free.
func FindKeywordHits(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var hits []string
	for _, kw := range AIKeywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	if promptFieldRe.MatchString(lower) {
		hits = append(hits, "prompt field")
	}
	return hits
}

// uniqueSorted collapses duplicate hits into a sorted set for rendering.
func uniqueSorted(hits []string) []string {
	if len(hits) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	sort.Strings(out)
	return out
}
