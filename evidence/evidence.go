// Package evidence attributes the sentences of a final answer to the
// references they cite and packages them into per-reference cards with
// citation markup stripped. It never re-queries any service.
package evidence

import (
	"regexp"
	"strings"

	"knowledge-assistant-service/models"
)

const noMatchPlaceholder = "No direct mentions found in the text."

var (
	urlRE        = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	bracketRefRE = regexp.MustCompile(`\[\s*\d+(?:\s*[,–-]\s*\d+)*\s*\]`) // [1], [2,5], [3–6]
	pmcRE        = regexp.MustCompile(`(?i)\bPMC\d+\b`)
	parensURLRE  = regexp.MustCompile(`(?i)\(\s*https?://[^\s)]+\s*\)`)
	mdHeadingRE  = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*.*$`)
	bulletRE     = regexp.MustCompile(`^[-*•]\s*`)
	emptyParenRE = regexp.MustCompile(`\(\s*\)`)
	emptyBrackRE = regexp.MustCompile(`\[\s*\]`)
	multiSpaceRE = regexp.MustCompile(`\s{2,}`)
	spacePunctRE = regexp.MustCompile(`\s+([.,;:!?])`)
	pmcTokenRE   = regexp.MustCompile(`(?i)PMC\d+`)
	anySpaceRE   = regexp.MustCompile(`\s+`)
)

// GenerateCards scans the answer once per reference and returns a card for
// every reference with at least one attributable sentence (or for every
// reference when IncludeUnmatched is set, with a placeholder snippet).
// Degenerate input always yields a well-formed, possibly empty result.
func GenerateCards(req models.EvidenceRequest) models.EvidenceResponse {
	cards := []models.EvidenceCard{}
	for _, ref := range req.References {
		snippets := extractSnippets(req.Response, ref)
		if len(snippets) == 0 {
			if !req.IncludeUnmatched {
				continue
			}
			snippets = []string{noMatchPlaceholder}
		}
		cards = append(cards, buildCard(ref, snippets))
	}
	return models.EvidenceResponse{TotalCards: len(cards), Cards: cards}
}

// extractSnippets returns the cleaned sentences of text that cite ref, in
// original order, de-duplicated by exact cleaned-text equality.
func extractSnippets(text string, ref models.Reference) []string {
	pmcToken := pmcTokenRE.FindString(ref.FilePath)

	var out []string
	seen := make(map[string]bool)
	for _, sentence := range splitSentences(text) {
		match := strings.Contains(sentence, "["+ref.ReferenceID+"]")
		if !match && strings.Contains(sentence, ref.FilePath) {
			match = true
		}
		if !match && pmcToken != "" && strings.Contains(sentence, pmcToken) {
			match = true
		}
		if !match {
			continue
		}
		if isReferenceListLine(sentence) {
			continue
		}

		cleaned := cleanSnippet(sentence)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}

// splitSentences normalizes whitespace runs to single spaces and splits on
// a boundary following '.', '!' or '?' and preceding whitespace. A simple
// heuristic, not a sentence boundary detector: abbreviations and decimal
// numbers may split incorrectly.
func splitSentences(text string) []string {
	t := strings.TrimSpace(anySpaceRE.ReplaceAllString(text, " "))
	if t == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(t); i++ {
		c := t[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(t) && t[i+1] == ' ' {
			if s := strings.TrimSpace(t[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(t[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// isReferenceListLine reports whether the line is a bare citation list
// (a "references" heading, or a bullet that is empty once URLs and dashes
// are stripped). Such lines are excluded from matching so a reference list
// is never quoted as a snippet.
func isReferenceListLine(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	lower := strings.ToLower(t)
	if strings.HasPrefix(lower, "### references") || lower == "references" {
		return true
	}
	noBullet := bulletRE.ReplaceAllString(t, "")
	core := urlRE.ReplaceAllString(noBullet, "")
	core = strings.TrimSpace(strings.ReplaceAll(core, "-", " "))
	return core == ""
}

// cleanSnippet strips citation artifacts from one sentence. Applying it to
// an already-cleaned sentence is a no-op.
func cleanSnippet(s string) string {
	s = mdHeadingRE.ReplaceAllString(s, "")
	s = bracketRefRE.ReplaceAllString(s, "")
	s = parensURLRE.ReplaceAllString(s, "")
	s = urlRE.ReplaceAllString(s, "")
	s = pmcRE.ReplaceAllString(s, "")
	s = emptyParenRE.ReplaceAllString(s, "")
	s = emptyBrackRE.ReplaceAllString(s, "")
	s = multiSpaceRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(bulletRE.ReplaceAllString(s, ""))
	s = spacePunctRE.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// titleFromPath derives a display title: the last path segment, overridden
// by the uppercased PMC id when the path carries one.
func titleFromPath(path string) string {
	title := strings.TrimRight(path, "/")
	if i := strings.LastIndex(title, "/"); i >= 0 {
		title = title[i+1:]
	}
	if title == "" {
		title = path
	}
	if m := pmcTokenRE.FindString(path); m != "" {
		title = strings.ToUpper(m)
	}
	return title
}

func buildCard(ref models.Reference, snippets []string) models.EvidenceCard {
	snips := make([]models.EvidenceSnippet, 0, len(snippets))
	for _, text := range snippets {
		snips = append(snips, models.EvidenceSnippet{Text: text})
	}
	return models.EvidenceCard{
		PaperID:      ref.ReferenceID,
		PaperTitle:   titleFromPath(ref.FilePath),
		SnippetCount: len(snips),
		Snippets:     snips,
		Linkouts:     models.Linkouts{SourceURL: ref.FilePath},
	}
}
