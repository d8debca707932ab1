package qaps

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aarnav1729/qap/pkg/query"
	"github.com/aarnav1729/qap/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "qaps", "q").
	Project("id", "ID").
	Project("customer_name", "CustomerName").
	Project("project_name", "ProjectName").
	Project("order_quantity", "OrderQuantity").
	Project("product_type", "ProductType").
	Project("plant", "Plant").
	Project("status", "Status").
	Project("current_level", "CurrentLevel").
	Project("submitted_by", "SubmittedBy").
	Project("submitted_at", "SubmittedAt").
	Project("items", "Items").
	Project("assignments", "Assignments").
	Project("timeline", "Timeline").
	Project("level_start_times", "LevelStartTimes").
	Project("level_end_times", "LevelEndTimes").
	Project("created_at", "CreatedAt").
	Project("last_modified_at", "LastModifiedAt")

var defaultSort = query.SortField{
	Field:      "LastModifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for QAP queries.
// Nil fields are ignored. Status, Plant, ProductType, and CurrentLevel use
// exact matching; CustomerName and ProjectName use case-insensitive contains
// matching; Statuses matches any of the given statuses.
type Filters struct {
	Status       *string  `json:"status,omitempty"`
	Statuses     []string `json:"statuses,omitempty"`
	CustomerName *string  `json:"customer_name,omitempty"`
	ProjectName  *string  `json:"project_name,omitempty"`
	ProductType  *string  `json:"product_type,omitempty"`
	Plant        *string  `json:"plant,omitempty"`
	CurrentLevel *int     `json:"current_level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	statuses := make([]any, len(f.Statuses))
	for i, s := range f.Statuses {
		statuses[i] = s
	}

	return b.
		WhereEquals("Status", f.Status).
		WhereIn("Status", statuses).
		WhereContains("CustomerName", f.CustomerName).
		WhereContains("ProjectName", f.ProjectName).
		WhereEquals("ProductType", f.ProductType).
		WhereEquals("Plant", f.Plant).
		WhereEquals("CurrentLevel", f.CurrentLevel)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if ss, ok := values["statuses"]; ok && len(ss) > 0 {
		f.Statuses = ss
	}

	if c := values.Get("customer_name"); c != "" {
		f.CustomerName = &c
	}

	if p := values.Get("project_name"); p != "" {
		f.ProjectName = &p
	}

	if pt := values.Get("product_type"); pt != "" {
		f.ProductType = &pt
	}

	if pl := values.Get("plant"); pl != "" {
		f.Plant = &pl
	}

	if lv := values.Get("current_level"); lv != "" {
		if v, err := strconv.Atoi(lv); err == nil {
			f.CurrentLevel = &v
		}
	}

	return f
}

func scanQAP(s repository.Scanner) (QAP, error) {
	var (
		q           QAP
		items       []byte
		assignments []byte
		timeline    []byte
		levelStarts []byte
		levelEnds   []byte
	)

	err := s.Scan(
		&q.ID,
		&q.CustomerName,
		&q.ProjectName,
		&q.OrderQuantity,
		&q.ProductType,
		&q.Plant,
		&q.Status,
		&q.CurrentLevel,
		&q.SubmittedBy,
		&q.SubmittedAt,
		&items,
		&assignments,
		&timeline,
		&levelStarts,
		&levelEnds,
		&q.CreatedAt,
		&q.LastModifiedAt,
	)
	if err != nil {
		return q, err
	}

	if err := unmarshalColumn(items, &q.Items, "items"); err != nil {
		return q, err
	}
	if err := unmarshalColumn(assignments, &q.Assignments, "assignments"); err != nil {
		return q, err
	}
	if err := unmarshalColumn(timeline, &q.Timeline, "timeline"); err != nil {
		return q, err
	}
	if err := unmarshalColumn(levelStarts, &q.LevelStartTimes, "level_start_times"); err != nil {
		return q, err
	}
	if err := unmarshalColumn(levelEnds, &q.LevelEndTimes, "level_end_times"); err != nil {
		return q, err
	}

	return q, nil
}

func unmarshalColumn(data []byte, target any, column string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", column, err)
	}
	return nil
}

func marshalColumn(v any, column string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", column, err)
	}
	return data, nil
}
