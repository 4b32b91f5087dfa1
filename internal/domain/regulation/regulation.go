package regulation

// RiskLevel is the coarse severity tier attached to a required clause.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseRiskLevel maps a string to a RiskLevel, defaulting to medium.
func ParseRiskLevel(s string) RiskLevel {
	switch s {
	case "low":
		return RiskLow
	case "high":
		return RiskHigh
	default:
		return RiskMedium
	}
}

// MarshalJSON renders risk levels as their string form.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses the string form of a risk level.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	*r = ParseRiskLevel(s)
	return nil
}

// ClauseRequirement is a single contractual provision a regulation requires.
// Instances are immutable after registry construction.
type ClauseRequirement struct {
	Name          string    `json:"clause"`
	Description   string    `json:"description"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Requirements  []string  `json:"requirements"`
	LegalCitation string    `json:"legal_citation,omitempty"`
}

// Definition is the static catalog entry for one regulation: its ordered
// required clauses plus the jurisdiction and industry codes it can apply to.
type Definition struct {
	ID            string              `json:"id"`
	Clauses       []ClauseRequirement `json:"clauses"`
	Jurisdictions []string            `json:"jurisdictions"`
	Industries    []string            `json:"industries"`
}

// AppliesToJurisdiction reports whether the regulation can apply in the given
// jurisdiction. The "global" wildcard matches every jurisdiction.
func (d *Definition) AppliesToJurisdiction(code string) bool {
	for _, j := range d.Jurisdictions {
		if j == code || j == "global" {
			return true
		}
	}
	return false
}

// AppliesToIndustry reports whether the regulation can apply to the given
// industry. The "all" wildcard matches every industry.
func (d *Definition) AppliesToIndustry(code string) bool {
	for _, i := range d.Industries {
		if i == code || i == "all" {
			return true
		}
	}
	return false
}
