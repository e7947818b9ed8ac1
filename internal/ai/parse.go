package ai

import (
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeBlock removes a surrounding markdown fence, which models emit
// despite being told not to.
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// extractJSONObject pulls the outermost {...} span out of mixed text.
func extractJSONObject(s string) string {
	return jsonObjectRe.FindString(stripCodeBlock(s))
}

// extractJSONArray pulls the outermost [...] span out of mixed text.
func extractJSONArray(s string) string {
	return jsonArrayRe.FindString(stripCodeBlock(s))
}

// splitLines turns a model answer into a cleaned list: one entry per
// non-empty line, leading bullets and numbering stripped.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = leadingNumberRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

var leadingNumberRe = regexp.MustCompile(`^\d+[.)]\s*`)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
