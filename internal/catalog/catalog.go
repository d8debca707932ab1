// Package catalog supplies the baseline specification rows that seed a new
// Quality Assurance Plan. Rows come in two variants: measurable quality
// parameters (MQP) and visual/EL defect criteria. The catalog ships embedded
// in the binary and may be overridden with an external file.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/catalog.json
var embedded embed.FS

// Criteria identifies which review table a specification row belongs to.
type Criteria string

// Criteria groups.
const (
	CriteriaMQP    Criteria = "MQP"
	CriteriaVisual Criteria = "Visual"
	CriteriaEL     Criteria = "EL"
)

// Severity classifies how serious a deviation on a row is.
type Severity string

// Severity classes.
const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
)

// MQPRow is a measurable-quality-parameter specification row.
// Specification holds the baseline limit text the customer reconciles against.
type MQPRow struct {
	SubCriteria        string   `json:"sub_criteria"`
	ComponentOperation string   `json:"component_operation"`
	Characteristics    string   `json:"characteristics"`
	Class              Severity `json:"class"`
	TypeOfCheck        string   `json:"type_of_check"`
	Sampling           string   `json:"sampling"`
	Specification      string   `json:"specification"`
}

// DefectRow is a visual-appearance or electroluminescence defect criteria row.
// CriteriaLimits holds the baseline defect-limit text the customer reconciles against.
type DefectRow struct {
	Criteria       Criteria `json:"criteria"`
	SubCriteria    string   `json:"sub_criteria"`
	Defect         string   `json:"defect"`
	DefectClass    Severity `json:"defect_class"`
	Description    string   `json:"description"`
	CriteriaLimits string   `json:"criteria_limits"`
}

// Catalog holds both ordered baseline row sequences. Order within each group
// is preserved when seeding a plan.
type Catalog struct {
	MQP      []MQPRow    `json:"mqp"`
	VisualEL []DefectRow `json:"visual_el"`
}

// Size returns the total number of rows across both groups.
func (c *Catalog) Size() int {
	return len(c.MQP) + len(c.VisualEL)
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	data, err := embedded.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return parse(data)
}

// LoadFile parses a catalog from an external file, replacing the embedded data.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.MQP) == 0 {
		return fmt.Errorf("no MQP rows")
	}
	if len(c.VisualEL) == 0 {
		return fmt.Errorf("no visual/EL rows")
	}

	for i, row := range c.MQP {
		if row.Specification == "" {
			return fmt.Errorf("mqp row %d: empty specification", i)
		}
	}

	for i, row := range c.VisualEL {
		if row.Criteria != CriteriaVisual && row.Criteria != CriteriaEL {
			return fmt.Errorf("visual/el row %d: criteria %q is not Visual or EL", i, row.Criteria)
		}
		if row.CriteriaLimits == "" {
			return fmt.Errorf("visual/el row %d: empty criteria limits", i)
		}
	}

	return nil
}
