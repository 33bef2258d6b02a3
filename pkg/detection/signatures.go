package detection

import "strings"

// Signature identifies a crawler by case-insensitive substrings of its user agent.
type Signature struct {
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	Patterns []string `json:"patterns"`
}

// SignatureTable is scanned in declaration order and the first hit wins, so
// more specific names must precede names they contain ("ClaudeBot" before "Claude").
type SignatureTable struct {
	signatures []Signature
}

func NewSignatureTable(signatures []Signature) *SignatureTable {
	table := &SignatureTable{signatures: make([]Signature, 0, len(signatures))}
	for _, s := range signatures {
		patterns := s.Patterns
		if len(patterns) == 0 {
			patterns = []string{s.Name}
		}
		lowered := make([]string, 0, len(patterns))
		for _, p := range patterns {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				lowered = append(lowered, p)
			}
		}
		table.signatures = append(table.signatures, Signature{
			Name:     s.Name,
			Provider: s.Provider,
			Patterns: lowered,
		})
	}
	return table
}

// DefaultSignatureTable returns the built-in list of known AI crawlers and agents.
func DefaultSignatureTable() *SignatureTable {
	return NewSignatureTable(defaultSignatures)
}

// Match expects an already lowercased user agent.
func (t *SignatureTable) Match(lowerUA string) (Signature, bool) {
	for _, s := range t.signatures {
		for _, p := range s.Patterns {
			if strings.Contains(lowerUA, p) {
				return s, true
			}
		}
	}
	return Signature{}, false
}

func (t *SignatureTable) All() []Signature {
	out := make([]Signature, len(t.signatures))
	copy(out, t.signatures)
	return out
}

var defaultSignatures = []Signature{
	{Name: "GPTBot", Provider: "OpenAI"},
	{Name: "ChatGPT-User", Provider: "OpenAI"},
	{Name: "OAI-SearchBot", Provider: "OpenAI"},
	{Name: "Claude-Web", Provider: "Anthropic"},
	{Name: "ClaudeBot", Provider: "Anthropic"},
	{Name: "anthropic-ai", Provider: "Anthropic"},
	{Name: "Google-Extended", Provider: "Google"},
	{Name: "GoogleOther", Provider: "Google"},
	{Name: "PerplexityBot", Provider: "Perplexity"},
	{Name: "Applebot-Extended", Provider: "Apple"},
	{Name: "FacebookBot", Provider: "Meta"},
	{Name: "facebookexternalhit", Provider: "Meta"},
	{Name: "Meta-ExternalAgent", Provider: "Meta"},
	{Name: "Bytespider", Provider: "ByteDance"},
	{Name: "Amazonbot", Provider: "Amazon"},
	{Name: "Diffbot", Provider: "Diffbot"},
	{Name: "CCBot", Provider: "Common Crawl"},
	{Name: "cohere-ai", Provider: "Cohere"},
	{Name: "AI2Bot", Provider: "Allen Institute"},
	{Name: "omgili", Provider: "Omgili"},
	{Name: "YouBot", Provider: "You.com"},
	{Name: "anthropic", Provider: "Anthropic"},
	{Name: "Claude", Provider: "Anthropic"},
}
