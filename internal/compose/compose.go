// Package compose builds post text within the 280-character budget.
package compose

import "strings"

const (
	// MaxPostLen is the hard character budget of one post.
	MaxPostLen = 280

	// linkReserve is the budget held for a shortened URL plus its newline,
	// regardless of the real link length.
	linkReserve = 25 + 1

	ellipsis = "…"
)

// Truncate fits body plus decoration into maxLen characters. The decoration
// is kept whole; body is cut and terminated with a single ellipsis when it
// does not fit. Lengths are counted in runes.
func Truncate(body, decoration string, maxLen int) string {
	allowed := maxLen - len([]rune(decoration))
	return truncateRunes(body, allowed) + decoration
}

func truncateRunes(s string, allowed int) string {
	runes := []rune(s)
	if len(runes) <= allowed {
		return s
	}
	cut := allowed - 1
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(string(runes[:cut]), " \t\n") + ellipsis
}

// TipText builds the text of a tip post: the tip plus the hashtag block.
func TipText(tip, hashtags string) string {
	return Truncate(tip, hashtags, MaxPostLen)
}

// NewsText builds the text of a news post: headline, link, then a hashtag
// block carrying the topic slug. The link gets a fixed reservation on the
// assumption the platform shortens it; the headline absorbs the rest.
func NewsText(title, link, topic string) string {
	hashtags := "\n\n#news #" + TopicSlug(topic)
	allowed := MaxPostLen - len([]rune(hashtags)) - linkReserve
	return truncateRunes(title, allowed) + "\n" + link + hashtags
}

// TopicSlug lowercases a topic and strips its spaces for hashtag use.
func TopicSlug(topic string) string {
	return strings.ReplaceAll(strings.ToLower(topic), " ", "")
}

// ImageQuery picks the first non-empty candidate and keeps at most its
// first eight words, so image search queries stay concise.
func ImageQuery(candidates ...string) string {
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		words := strings.Fields(candidate)
		if len(words) > 8 {
			words = words[:8]
		}
		return strings.Join(words, " ")
	}
	return "technology"
}
