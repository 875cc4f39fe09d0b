package feature

import "regexp"

// MentionMarker replaces every user mention when normalization is active, so
// "@alice thanks!" and "@bob thanks!" produce identical tokens.
const MentionMarker = "@user"

var mentionPattern = regexp.MustCompile(`@\w+`)

// MentionConfig configures the mention normalizer.
type MentionConfig struct {
	// Active enables mention squashing. When false the stage is the
	// identity function.
	Active bool `json:"active"`
}

// MentionNormalizer is a TextStage that replaces @handle-shaped substrings
// with a single generic marker token. It runs before tokenization and holds
// no fitted state.
type MentionNormalizer struct {
	cfg MentionConfig
}

// NewMentionNormalizer builds the stage from its config.
func NewMentionNormalizer(cfg MentionConfig) *MentionNormalizer {
	return &MentionNormalizer{cfg: cfg}
}

// Transform rewrites every document, or returns the input slice unchanged
// when the stage is inactive.
func (m *MentionNormalizer) Transform(docs []string) []string {
	if !m.cfg.Active {
		return docs
	}
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = mentionPattern.ReplaceAllString(d, MentionMarker)
	}
	return out
}
