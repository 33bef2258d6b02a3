package detection

import (
	"math"
	"strings"
)

const (
	// GenericProvider labels results where no named bot matched.
	GenericProvider = "Unknown"

	signatureWeight = 0.7
	headlessWeight  = 0.2
	maxConfidence   = 1.0
)

var headlessIndicators = []string{"headless", "puppeteer", "playwright", "selenium"}

// Classification is the verdict for a single request. BotName is nil when no
// signature matched.
type Classification struct {
	BotName    *string   `json:"bot_name"`
	Provider   string    `json:"provider"`
	Confidence float64   `json:"confidence"`
	Risk       RiskLevel `json:"risk_level"`
	Headless   bool      `json:"headless"`
}

func (c Classification) IsBot() bool {
	return c.BotName != nil
}

type Classifier interface {
	Classify(userAgent, ip string) Classification
	Signatures() []Signature
}

type classifier struct {
	table *SignatureTable
}

func NewClassifier(table *SignatureTable) Classifier {
	if table == nil {
		table = DefaultSignatureTable()
	}
	return &classifier{table: table}
}

// Classify never fails. The ip argument is accepted so callers can pass the
// resolved client address; the verdict is derived from the user agent only.
func (c *classifier) Classify(userAgent, _ string) Classification {
	ua := strings.ToLower(userAgent)
	result := Classification{
		Provider: GenericProvider,
		Risk:     RiskLow,
	}

	if sig, ok := c.table.Match(ua); ok {
		name := sig.Name
		result.BotName = &name
		result.Provider = sig.Provider
		result.Confidence += signatureWeight
		result.Risk = RiskMedium
	}

	for _, indicator := range headlessIndicators {
		if strings.Contains(ua, indicator) {
			result.Headless = true
			result.Confidence += headlessWeight
			result.Risk = RiskHigh
			break
		}
	}

	result.Confidence = math.Min(round2(result.Confidence), maxConfidence)
	return result
}

func (c *classifier) Signatures() []Signature {
	return c.table.All()
}

// round2 keeps 0.7+0.2 from surfacing as 0.8999999999999999.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
