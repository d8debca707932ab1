package qaps

import "github.com/aarnav1729/qap/internal/catalog"

// Decision is the tri-state reconciliation outcome for a specification item.
type Decision string

// Decision values. The zero value means the item has not been reviewed yet.
const (
	DecisionUnset    Decision = ""
	DecisionMatches  Decision = "matches"
	DecisionMismatch Decision = "does-not-match"
)

// Valid reports whether d is a reviewable decision (matches or does-not-match).
func (d Decision) Valid() bool {
	return d == DecisionMatches || d == DecisionMismatch
}

// Item is a single specification row under reconciliation. Exactly one of
// MQP or Defect is set, matching the Criteria tag. CustomerSpecification is
// nil until a decision is made: deciding "matches" copies the baseline,
// deciding "does-not-match" clears it to empty for free-text entry.
type Item struct {
	Sequence              int                `json:"sequence"`
	Criteria              catalog.Criteria   `json:"criteria"`
	MQP                   *catalog.MQPRow    `json:"mqp,omitempty"`
	Defect                *catalog.DefectRow `json:"defect,omitempty"`
	Decision              Decision           `json:"decision"`
	CustomerSpecification *string            `json:"customer_specification,omitempty"`
}

// Baseline returns the manufacturer's baseline text for this item:
// the measurable specification for MQP rows, the defect limit for
// visual/EL rows.
func (i *Item) Baseline() string {
	if i.MQP != nil {
		return i.MQP.Specification
	}
	if i.Defect != nil {
		return i.Defect.CriteriaLimits
	}
	return ""
}

// SubCriteria returns the row's sub-criteria label regardless of variant.
func (i *Item) SubCriteria() string {
	if i.MQP != nil {
		return i.MQP.SubCriteria
	}
	if i.Defect != nil {
		return i.Defect.SubCriteria
	}
	return ""
}

// Mismatch reports whether the item has been marked as not matching.
func (i *Item) Mismatch() bool {
	return i.Decision == DecisionMismatch
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for idx := range out {
		if out[idx].CustomerSpecification != nil {
			v := *out[idx].CustomerSpecification
			out[idx].CustomerSpecification = &v
		}
	}
	return out
}
