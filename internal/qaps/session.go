package qaps

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aarnav1729/qap/internal/catalog"
)

// Stage is the editing-session lifecycle stage.
type Stage string

// Session stages. Reviewing may finalize directly as a draft; submission is
// only reachable from the assignment stage.
const (
	StageReviewing Stage = "reviewing"
	StageAssigning Stage = "assigning"
	StageFinalized Stage = "finalized"
)

// Session is the in-memory editing state for one plan: the reconciliation
// items, the mismatch assignment map, and the stage machine that gates which
// operations are currently legal. A session is owned by a single editor and
// every operation runs to completion synchronously.
type Session struct {
	id        uuid.UUID
	recordID  uuid.UUID
	createdAt time.Time
	header    Header
	items     []Item
	mapped    AssignmentMap
	stage     Stage

	// resumeStage records the stage a finalized session came from, so a
	// failed persist can reopen it without losing the editor's work.
	resumeStage Stage

	// loaded marks an edit session whose assignment map came from the
	// stored record; the first entry into the assignment stage keeps that
	// map instead of rebuilding it.
	loaded bool
}

// NewSession seeds a session from the baseline catalog. Sequence numbers are
// assigned contiguously from start across the MQP rows followed by the
// visual/EL rows, preserving catalog order within each group. The start
// offset is caller-supplied so plans never collide in a shared numbering
// space.
func NewSession(cat *catalog.Catalog, start int) *Session {
	items := make([]Item, 0, cat.Size())

	seq := start
	for i := range cat.MQP {
		row := cat.MQP[i]
		items = append(items, Item{
			Sequence: seq,
			Criteria: catalog.CriteriaMQP,
			MQP:      &row,
		})
		seq++
	}
	for i := range cat.VisualEL {
		row := cat.VisualEL[i]
		items = append(items, Item{
			Sequence: seq,
			Criteria: row.Criteria,
			Defect:   &row,
		})
		seq++
	}

	return &Session{
		id:    uuid.New(),
		items: items,
		stage: StageReviewing,
	}
}

// EditSession seeds a session from an existing record instead of the catalog.
// The record's id, creation timestamp, header, items, and assignment map are
// restored; the session starts back at the reviewing stage.
func EditSession(record *QAP) *Session {
	s := &Session{
		id:        uuid.New(),
		recordID:  record.ID,
		createdAt: record.CreatedAt,
		header:    record.Header,
		items:     cloneItems(record.Items),
		stage:     StageReviewing,
	}
	if len(record.Assignments) > 0 {
		s.mapped = cloneAssignments(record.Assignments)
		s.loaded = true
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Stage returns the current lifecycle stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Header returns the current header values.
func (s *Session) Header() Header {
	return s.header
}

// SetHeader replaces the header values. Validation is deferred to submission.
func (s *Session) SetHeader(h Header) {
	s.header = h
}

// Items returns the full ordered item sequence across both criteria groups.
func (s *Session) Items() []Item {
	return s.items
}

// Grouped partitions the items into the MQP table and the visual/EL table.
// This is a projection over the single item sequence, not a second store.
func (s *Session) Grouped() (mqp, visualEL []Item) {
	for _, item := range s.items {
		if item.Criteria == catalog.CriteriaMQP {
			mqp = append(mqp, item)
		} else {
			visualEL = append(visualEL, item)
		}
	}
	return mqp, visualEL
}

// Item resolves a sequence number to its specification item. Sequence
// numbers are unique within a plan, so the lookup is unambiguous; a miss
// is a consistency bug, not a user error.
func (s *Session) Item(seq int) (*Item, error) {
	for i := range s.items {
		if s.items[i].Sequence == seq {
			return &s.items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownSequence, seq)
}

// Decide records the match decision for an item. Deciding "matches" copies
// the baseline into the customer specification; "does-not-match" clears it
// to empty, enabling free-text entry. Re-deciding fully overwrites any prior
// customer specification.
func (s *Session) Decide(seq int, d Decision) error {
	if s.stage != StageReviewing {
		return fmt.Errorf("%w: decide in %s", ErrInvalidStage, s.stage)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, d)
	}

	item, err := s.Item(seq)
	if err != nil {
		return err
	}

	item.Decision = d
	spec := ""
	if d == DecisionMatches {
		spec = item.Baseline()
	}
	item.CustomerSpecification = &spec

	return nil
}

// SetCustomerSpecification sets the customer-accepted text verbatim. The
// field is only meaningfully editable while the item is marked
// does-not-match, but the setter itself is unconditional; the presentation
// layer disables it otherwise.
func (s *Session) SetCustomerSpecification(seq int, text string) error {
	item, err := s.Item(seq)
	if err != nil {
		return err
	}
	item.CustomerSpecification = &text
	return nil
}

// EnterAssignments transitions from reviewing to the assignment stage,
// rebuilding the assignment map over the items currently marked
// does-not-match: stale entries are dropped and new mismatches get fresh
// all-false flags. Items left undecided need no departmental routing and are
// excluded. The one exception is the first entry of an edit session with a
// previously-loaded map, which is kept as-is.
func (s *Session) EnterAssignments() error {
	if s.stage != StageReviewing {
		return fmt.Errorf("%w: enter assignments from %s", ErrInvalidStage, s.stage)
	}

	if s.loaded {
		s.loaded = false
		s.stage = StageAssigning
		return nil
	}

	rebuilt := make(AssignmentMap)
	for _, item := range s.items {
		if item.Mismatch() {
			rebuilt[item.Sequence] = Assignment{}
		}
	}
	s.mapped = rebuilt
	s.stage = StageAssigning

	return nil
}

// ReturnToReview moves from the assignment stage back to item review.
// The next EnterAssignments will rebuild the map against the updated
// decisions.
func (s *Session) ReturnToReview() error {
	if s.stage != StageAssigning {
		return fmt.Errorf("%w: return to review from %s", ErrInvalidStage, s.stage)
	}
	s.stage = StageReviewing
	return nil
}

// Assign sets one department flag on a mismatched item's assignment entry.
func (s *Session) Assign(seq int, dept Department, value bool) error {
	if s.stage != StageAssigning {
		return fmt.Errorf("%w: assign in %s", ErrInvalidStage, s.stage)
	}
	if !dept.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDepartment, dept)
	}

	entry, ok := s.mapped[seq]
	if !ok {
		return fmt.Errorf("%w: no assignment entry for %d", ErrUnknownSequence, seq)
	}

	if err := entry.Set(dept, value); err != nil {
		return err
	}
	s.mapped[seq] = entry

	return nil
}

// Assignments returns the current assignment map.
func (s *Session) Assignments() AssignmentMap {
	return s.mapped
}

// Draft finalizes the session as a draft record. Drafts are allowed with an
// incomplete header and items in any decision state, from either the
// reviewing or the assignment stage.
func (s *Session) Draft(actor string) (*QAP, error) {
	if s.stage != StageReviewing && s.stage != StageAssigning {
		return nil, fmt.Errorf("%w: draft from %s", ErrInvalidStage, s.stage)
	}

	record := s.build(actor, time.Now())
	record.Status = StatusDraft
	record.CurrentLevel = 1
	record.Timeline = []TimelineEntry{}
	record.LevelEndTimes = map[int]time.Time{}

	s.resumeStage = s.stage
	s.stage = StageFinalized
	return record, nil
}

// Submit finalizes the session as a level-2 submission. It is only reachable
// from the assignment stage, and the header must validate; a validation
// failure leaves the session intact so the editor can correct it or fall
// back to a draft.
func (s *Session) Submit(actor string) (*QAP, error) {
	if s.stage != StageAssigning {
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidStage, s.stage)
	}
	if err := ValidateHeader(s.header); err != nil {
		return nil, err
	}

	now := time.Now()
	record := s.build(actor, now)
	record.Status = StatusLevel2
	record.CurrentLevel = 2
	record.SubmittedAt = &now
	record.Timeline = []TimelineEntry{{
		Level:     2,
		Action:    SubmitAction,
		Actor:     actor,
		Timestamp: now,
	}}
	record.LevelStartTimes[2] = now
	record.LevelEndTimes = map[int]time.Time{1: now}

	s.resumeStage = s.stage
	s.stage = StageFinalized
	return record, nil
}

// Reopen returns a finalized session to the stage it finalized from. A
// caller uses it when persisting the finalized record fails, so the record
// can be rebuilt and saved again. It is a no-op in any other stage.
func (s *Session) Reopen() {
	if s.stage == StageFinalized {
		s.stage = s.resumeStage
	}
}

func (s *Session) build(actor string, now time.Time) *QAP {
	id := s.recordID
	createdAt := s.createdAt
	if id == uuid.Nil {
		id = uuid.New()
	}
	if createdAt.IsZero() {
		createdAt = now
	}

	assignments := s.mapped
	if assignments == nil {
		assignments = AssignmentMap{}
	}

	return &QAP{
		ID:              id,
		Header:          s.header,
		SubmittedBy:     actor,
		Items:           cloneItems(s.items),
		Assignments:     cloneAssignments(assignments),
		CreatedAt:       createdAt,
		LastModifiedAt:  now,
		LevelStartTimes: map[int]time.Time{1: now},
	}
}
