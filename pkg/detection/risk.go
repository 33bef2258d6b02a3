package detection

import "strings"

type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{
	RiskUnknown: 0,
	RiskLow:     1,
	RiskMedium:  2,
	RiskHigh:    3,
}

// ParseRiskLevel maps any unrecognised value to RiskUnknown.
func ParseRiskLevel(value string) RiskLevel {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := riskRank[level]; !ok {
		return RiskUnknown
	}
	return level
}

// AtLeast reports whether r is as severe as other or more.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[r] >= riskRank[other]
}

func (r RiskLevel) String() string {
	return string(r)
}
