package qaps_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/internal/qaps"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		MQP: []catalog.MQPRow{
			{
				SubCriteria:   "Dimensions",
				Class:         catalog.SeverityMajor,
				TypeOfCheck:   "Measurement",
				Specification: "2278 x 1134 mm, tolerance +/- 2 mm",
			},
			{
				SubCriteria:   "Gel Content",
				Class:         catalog.SeverityCritical,
				TypeOfCheck:   "Lab test",
				Specification: "Cross-link degree >= 75%",
			},
		},
		VisualEL: []catalog.DefectRow{
			{
				Criteria:       catalog.CriteriaVisual,
				SubCriteria:    "Glass",
				Defect:         "Scratch",
				DefectClass:    catalog.SeverityMinor,
				CriteriaLimits: "Length < 50 mm, max 2 per module",
			},
			{
				Criteria:       catalog.CriteriaEL,
				SubCriteria:    "Cell",
				Defect:         "Micro-crack",
				DefectClass:    catalog.SeverityCritical,
				CriteriaLimits: "Not accepted",
			},
		},
	}
}

func validHeader() qaps.Header {
	return qaps.Header{
		CustomerName:  "Apex Solar",
		ProjectName:   "Desert Ridge 200MW",
		OrderQuantity: 200.5,
		ProductType:   "Bifacial 580W",
		Plant:         "Plant 2",
	}
}

func TestNewSessionSeeding(t *testing.T) {
	cat := testCatalog()
	sess := qaps.NewSession(cat, 10)

	items := sess.Items()
	if len(items) != cat.Size() {
		t.Fatalf("item count = %d, want %d", len(items), cat.Size())
	}

	for i, item := range items {
		if want := 10 + i; item.Sequence != want {
			t.Errorf("items[%d].Sequence = %d, want %d", i, item.Sequence, want)
		}
		if item.Decision != qaps.DecisionUnset {
			t.Errorf("items[%d].Decision = %q, want unset", i, item.Decision)
		}
		if item.CustomerSpecification != nil {
			t.Errorf("items[%d].CustomerSpecification = %q, want nil", i, *item.CustomerSpecification)
		}
	}

	// MQP rows come first, visual/EL after, preserving catalog order.
	if items[0].Criteria != catalog.CriteriaMQP || items[0].MQP == nil || items[0].Defect != nil {
		t.Errorf("items[0] should be an MQP item, got criteria %q", items[0].Criteria)
	}
	if items[0].MQP.SubCriteria != "Dimensions" {
		t.Errorf("items[0] sub-criteria = %q, want Dimensions", items[0].MQP.SubCriteria)
	}
	if items[2].Criteria != catalog.CriteriaVisual || items[2].Defect == nil || items[2].MQP != nil {
		t.Errorf("items[2] should be a Visual defect item, got criteria %q", items[2].Criteria)
	}
	if items[3].Criteria != catalog.CriteriaEL {
		t.Errorf("items[3].Criteria = %q, want EL", items[3].Criteria)
	}

	if sess.Stage() != qaps.StageReviewing {
		t.Errorf("new session stage = %q, want reviewing", sess.Stage())
	}
}

func TestGrouped(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mqp, visualEL := sess.Grouped()

	if len(mqp) != 2 {
		t.Errorf("mqp group length = %d, want 2", len(mqp))
	}
	if len(visualEL) != 2 {
		t.Errorf("visual/el group length = %d, want 2", len(visualEL))
	}
	for _, item := range mqp {
		if item.Criteria != catalog.CriteriaMQP {
			t.Errorf("mqp group contains criteria %q", item.Criteria)
		}
	}
}

func TestDecideMatchesCopiesBaseline(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	if err := sess.Decide(1, qaps.DecisionMatches); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	item, err := sess.Item(1)
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if item.CustomerSpecification == nil {
		t.Fatal("CustomerSpecification is nil after matching decision")
	}
	if *item.CustomerSpecification != item.MQP.Specification {
		t.Errorf("CustomerSpecification = %q, want baseline %q",
			*item.CustomerSpecification, item.MQP.Specification)
	}
}

func TestDecideMatchesCopiesDefectLimits(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	if err := sess.Decide(3, qaps.DecisionMatches); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	item, _ := sess.Item(3)
	if item.CustomerSpecification == nil || *item.CustomerSpecification != item.Defect.CriteriaLimits {
		t.Errorf("CustomerSpecification should copy defect criteria limits %q", item.Defect.CriteriaLimits)
	}
}

func TestDecideMismatchClears(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	// A prior matching decision is fully overwritten.
	if err := sess.Decide(1, qaps.DecisionMatches); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if err := sess.Decide(1, qaps.DecisionMismatch); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	item, _ := sess.Item(1)
	if item.Decision != qaps.DecisionMismatch {
		t.Errorf("Decision = %q, want does-not-match", item.Decision)
	}
	if item.CustomerSpecification == nil || *item.CustomerSpecification != "" {
		t.Errorf("CustomerSpecification = %v, want empty string", item.CustomerSpecification)
	}
}

func TestDecideErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *qaps.Session)
		seq     int
		d       qaps.Decision
		wantErr error
	}{
		{
			name:    "invalid decision value",
			setup:   func(s *qaps.Session) {},
			seq:     1,
			d:       qaps.Decision("maybe"),
			wantErr: qaps.ErrInvalidDecision,
		},
		{
			name:    "unset is not a decision",
			setup:   func(s *qaps.Session) {},
			seq:     1,
			d:       qaps.DecisionUnset,
			wantErr: qaps.ErrInvalidDecision,
		},
		{
			name:    "unknown sequence",
			setup:   func(s *qaps.Session) {},
			seq:     99,
			d:       qaps.DecisionMatches,
			wantErr: qaps.ErrUnknownSequence,
		},
		{
			name: "wrong stage",
			setup: func(s *qaps.Session) {
				if err := s.EnterAssignments(); err != nil {
					t.Fatalf("EnterAssignments failed: %v", err)
				}
			},
			seq:     1,
			d:       qaps.DecisionMatches,
			wantErr: qaps.ErrInvalidStage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := qaps.NewSession(testCatalog(), 1)
			tt.setup(sess)

			err := sess.Decide(tt.seq, tt.d)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decide error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetCustomerSpecification(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	if err := sess.Decide(1, qaps.DecisionMismatch); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if err := sess.SetCustomerSpecification(1, "2280 x 1136 mm per customer drawing"); err != nil {
		t.Fatalf("SetCustomerSpecification failed: %v", err)
	}

	item, _ := sess.Item(1)
	if *item.CustomerSpecification != "2280 x 1136 mm per customer drawing" {
		t.Errorf("CustomerSpecification = %q, want verbatim text", *item.CustomerSpecification)
	}

	if err := sess.SetCustomerSpecification(99, "x"); !errors.Is(err, qaps.ErrUnknownSequence) {
		t.Errorf("unknown sequence error = %v, want ErrUnknownSequence", err)
	}
}

func TestEnterAssignmentsBuildsMismatchMap(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	mustDecide(t, sess, 1, qaps.DecisionMatches)
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustDecide(t, sess, 4, qaps.DecisionMismatch)
	// sequence 3 left undecided

	if err := sess.EnterAssignments(); err != nil {
		t.Fatalf("EnterAssignments failed: %v", err)
	}
	if sess.Stage() != qaps.StageAssigning {
		t.Errorf("stage = %q, want assigning", sess.Stage())
	}

	mapped := sess.Assignments()
	if len(mapped) != 2 {
		t.Fatalf("assignment map size = %d, want 2", len(mapped))
	}
	for _, seq := range []int{2, 4} {
		entry, ok := mapped[seq]
		if !ok {
			t.Errorf("missing assignment entry for sequence %d", seq)
			continue
		}
		if entry.Production || entry.Quality || entry.Technical {
			t.Errorf("entry %d flags should start false, got %+v", seq, entry)
		}
	}
}

func TestEnterAssignmentsDropsStaleEntries(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	mustDecide(t, sess, 1, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)
	if err := sess.Assign(1, qaps.DepartmentQuality, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// Flip the decision back and re-enter: the old entry must not survive.
	if err := sess.ReturnToReview(); err != nil {
		t.Fatalf("ReturnToReview failed: %v", err)
	}
	mustDecide(t, sess, 1, qaps.DecisionMatches)
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)

	mapped := sess.Assignments()
	if _, ok := mapped[1]; ok {
		t.Error("stale assignment entry for sequence 1 survived rebuild")
	}
	entry, ok := mapped[2]
	if !ok {
		t.Fatal("missing assignment entry for sequence 2")
	}
	if entry.Production || entry.Quality || entry.Technical {
		t.Errorf("fresh entry flags should be false, got %+v", entry)
	}
}

func TestEnterAssignmentsWithNoMismatches(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mustDecide(t, sess, 1, qaps.DecisionMatches)

	if err := sess.EnterAssignments(); err != nil {
		t.Fatalf("EnterAssignments failed: %v", err)
	}
	if len(sess.Assignments()) != 0 {
		t.Errorf("assignment map size = %d, want 0", len(sess.Assignments()))
	}
	if sess.Stage() != qaps.StageAssigning {
		t.Errorf("stage = %q, want assigning", sess.Stage())
	}
}

func TestAssign(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)

	if err := sess.Assign(2, qaps.DepartmentProduction, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := sess.Assign(2, qaps.DepartmentTechnical, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := sess.Assign(2, qaps.DepartmentProduction, false); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	entry := sess.Assignments()[2]
	if entry.Production {
		t.Error("Production flag should have been toggled back off")
	}
	if !entry.Technical {
		t.Error("Technical flag should be set")
	}
	if entry.Quality {
		t.Error("Quality flag should be unset")
	}
}

func TestAssignErrors(t *testing.T) {
	t.Run("before assignment stage", func(t *testing.T) {
		sess := qaps.NewSession(testCatalog(), 1)
		mustDecide(t, sess, 2, qaps.DecisionMismatch)

		err := sess.Assign(2, qaps.DepartmentQuality, true)
		if !errors.Is(err, qaps.ErrInvalidStage) {
			t.Errorf("error = %v, want ErrInvalidStage", err)
		}
	})

	t.Run("sequence not in map", func(t *testing.T) {
		sess := qaps.NewSession(testCatalog(), 1)
		mustDecide(t, sess, 2, qaps.DecisionMismatch)
		mustEnterAssignments(t, sess)

		err := sess.Assign(1, qaps.DepartmentQuality, true)
		if !errors.Is(err, qaps.ErrUnknownSequence) {
			t.Errorf("error = %v, want ErrUnknownSequence", err)
		}
	})

	t.Run("unknown department", func(t *testing.T) {
		sess := qaps.NewSession(testCatalog(), 1)
		mustDecide(t, sess, 2, qaps.DecisionMismatch)
		mustEnterAssignments(t, sess)

		err := sess.Assign(2, qaps.Department("legal"), true)
		if !errors.Is(err, qaps.ErrUnknownDepartment) {
			t.Errorf("error = %v, want ErrUnknownDepartment", err)
		}
	})
}

func TestReturnToReviewOnlyFromAssigning(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)

	if err := sess.ReturnToReview(); !errors.Is(err, qaps.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}

	mustEnterAssignments(t, sess)
	if err := sess.ReturnToReview(); err != nil {
		t.Fatalf("ReturnToReview failed: %v", err)
	}
	if sess.Stage() != qaps.StageReviewing {
		t.Errorf("stage = %q, want reviewing", sess.Stage())
	}
}

func TestDraftFromReviewing(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mustDecide(t, sess, 1, qaps.DecisionMatches)

	record, err := sess.Draft("inspector.rao")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	if record.Status != qaps.StatusDraft {
		t.Errorf("Status = %q, want draft", record.Status)
	}
	if record.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1", record.CurrentLevel)
	}
	if record.SubmittedBy != "inspector.rao" {
		t.Errorf("SubmittedBy = %q, want inspector.rao", record.SubmittedBy)
	}
	if record.SubmittedAt != nil {
		t.Errorf("SubmittedAt = %v, want nil for drafts", record.SubmittedAt)
	}
	if len(record.Timeline) != 0 {
		t.Errorf("Timeline length = %d, want 0", len(record.Timeline))
	}
	if len(record.LevelEndTimes) != 0 {
		t.Errorf("LevelEndTimes = %v, want empty", record.LevelEndTimes)
	}
	if _, ok := record.LevelStartTimes[1]; !ok {
		t.Error("LevelStartTimes missing level 1")
	}
	if record.ID == uuid.Nil {
		t.Error("draft record should get a fresh id")
	}
	if record.CreatedAt.IsZero() || record.LastModifiedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	if record.Assignments == nil {
		t.Error("Assignments should be an empty map, not nil")
	}

	if sess.Stage() != qaps.StageFinalized {
		t.Errorf("stage = %q, want finalized", sess.Stage())
	}
	if _, err := sess.Draft("inspector.rao"); !errors.Is(err, qaps.ErrInvalidStage) {
		t.Errorf("second Draft error = %v, want ErrInvalidStage", err)
	}
}

func TestDraftFromAssigning(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)

	record, err := sess.Draft("inspector.rao")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if record.Status != qaps.StatusDraft {
		t.Errorf("Status = %q, want draft", record.Status)
	}
	if len(record.Assignments) != 1 {
		t.Errorf("Assignments size = %d, want 1", len(record.Assignments))
	}
}

func TestSubmitOnlyFromAssigning(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())

	if _, err := sess.Submit("inspector.rao"); !errors.Is(err, qaps.ErrInvalidStage) {
		t.Errorf("error = %v, want ErrInvalidStage", err)
	}
}

func TestSubmitRequiresCompleteHeader(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	mustEnterAssignments(t, sess)

	header := validHeader()
	header.ProjectName = ""
	header.OrderQuantity = 0
	sess.SetHeader(header)

	_, err := sess.Submit("inspector.rao")
	if !errors.Is(err, qaps.ErrIncompleteHeader) {
		t.Fatalf("error = %v, want ErrIncompleteHeader", err)
	}

	// The session survives so the editor can repair the header or fall
	// back to a draft.
	if sess.Stage() != qaps.StageAssigning {
		t.Errorf("stage = %q, want assigning after failed submit", sess.Stage())
	}
	sess.SetHeader(validHeader())
	if _, err := sess.Submit("inspector.rao"); err != nil {
		t.Fatalf("Submit after repair failed: %v", err)
	}
}

func TestSubmitBuildsLevel2Record(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())
	mustDecide(t, sess, 1, qaps.DecisionMatches)
	mustDecide(t, sess, 3, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)
	if err := sess.Assign(3, qaps.DepartmentQuality, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	record, err := sess.Submit("inspector.rao")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if record.Status != qaps.StatusLevel2 {
		t.Errorf("Status = %q, want level-2", record.Status)
	}
	if record.CurrentLevel != 2 {
		t.Errorf("CurrentLevel = %d, want 2", record.CurrentLevel)
	}
	if record.SubmittedAt == nil {
		t.Error("SubmittedAt should be set")
	}

	if len(record.Timeline) != 1 {
		t.Fatalf("Timeline length = %d, want 1", len(record.Timeline))
	}
	entry := record.Timeline[0]
	if entry.Level != 2 {
		t.Errorf("timeline level = %d, want 2", entry.Level)
	}
	if entry.Action != qaps.SubmitAction {
		t.Errorf("timeline action = %q, want %q", entry.Action, qaps.SubmitAction)
	}
	if entry.Actor != "inspector.rao" {
		t.Errorf("timeline actor = %q, want inspector.rao", entry.Actor)
	}

	if _, ok := record.LevelStartTimes[1]; !ok {
		t.Error("LevelStartTimes missing level 1")
	}
	if _, ok := record.LevelStartTimes[2]; !ok {
		t.Error("LevelStartTimes missing level 2")
	}
	if _, ok := record.LevelEndTimes[1]; !ok {
		t.Error("LevelEndTimes missing level 1")
	}
	if _, ok := record.LevelEndTimes[2]; ok {
		t.Error("LevelEndTimes should not contain level 2")
	}

	if !record.Assignments[3].Quality {
		t.Error("quality assignment on sequence 3 not carried into record")
	}

	mismatches := record.Mismatches()
	if len(mismatches) != 1 || mismatches[0].Sequence != 3 {
		t.Errorf("Mismatches() = %v, want single item at sequence 3", mismatches)
	}

	if sess.Stage() != qaps.StageFinalized {
		t.Errorf("stage = %q, want finalized", sess.Stage())
	}
}

func TestEditSessionPreservesIdentity(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)
	if err := sess.Assign(2, qaps.DepartmentProduction, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	original, err := sess.Submit("inspector.rao")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	edit := qaps.EditSession(original)
	if edit.Stage() != qaps.StageReviewing {
		t.Errorf("edit session stage = %q, want reviewing", edit.Stage())
	}
	if edit.Header() != original.Header {
		t.Errorf("edit header = %+v, want %+v", edit.Header(), original.Header)
	}

	// First entry into the assignment stage keeps the loaded map.
	mustEnterAssignments(t, edit)
	if !edit.Assignments()[2].Production {
		t.Error("loaded production assignment lost on first assignment entry")
	}

	record, err := edit.Draft("inspector.rao")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if record.ID != original.ID {
		t.Errorf("edited record id = %s, want original %s", record.ID, original.ID)
	}
	if !record.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt = %v, want preserved %v", record.CreatedAt, original.CreatedAt)
	}
	if !record.LastModifiedAt.After(original.LastModifiedAt) && !record.LastModifiedAt.Equal(original.LastModifiedAt) {
		t.Errorf("LastModifiedAt = %v, should not precede original %v", record.LastModifiedAt, original.LastModifiedAt)
	}
}

func TestEditSessionRebuildsAfterReturn(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())
	mustDecide(t, sess, 2, qaps.DecisionMismatch)
	mustEnterAssignments(t, sess)
	if err := sess.Assign(2, qaps.DepartmentProduction, true); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	original, err := sess.Submit("inspector.rao")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	edit := qaps.EditSession(original)
	mustEnterAssignments(t, edit)
	if err := edit.ReturnToReview(); err != nil {
		t.Fatalf("ReturnToReview failed: %v", err)
	}

	// Second entry rebuilds from current decisions: the loaded flags are gone.
	mustEnterAssignments(t, edit)
	if edit.Assignments()[2].Production {
		t.Error("loaded assignment should be discarded on rebuild")
	}
}

func TestEditSessionIsolatedFromRecord(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())
	mustDecide(t, sess, 1, qaps.DecisionMismatch)

	record, err := sess.Draft("inspector.rao")
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	edit := qaps.EditSession(record)
	if err := edit.SetCustomerSpecification(1, "changed in session"); err != nil {
		t.Fatalf("SetCustomerSpecification failed: %v", err)
	}

	if *record.Items[0].CustomerSpecification == "changed in session" {
		t.Error("mutating the edit session leaked into the stored record")
	}
}

func mustDecide(t *testing.T, s *qaps.Session, seq int, d qaps.Decision) {
	t.Helper()
	if err := s.Decide(seq, d); err != nil {
		t.Fatalf("Decide(%d, %q) failed: %v", seq, d, err)
	}
}

func mustEnterAssignments(t *testing.T, s *qaps.Session) {
	t.Helper()
	if err := s.EnterAssignments(); err != nil {
		t.Fatalf("EnterAssignments failed: %v", err)
	}
}

func TestReopenAfterDraft(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	if _, err := sess.Draft("inspector.rao"); err != nil {
		t.Fatalf("Draft failed: %v", err)
	}

	sess.Reopen()
	if sess.Stage() != qaps.StageReviewing {
		t.Fatalf("stage after reopen = %s, want reviewing", sess.Stage())
	}
	if _, err := sess.Draft("inspector.rao"); err != nil {
		t.Errorf("Draft after reopen failed: %v", err)
	}
}

func TestReopenAfterSubmitRestoresAssignmentStage(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.SetHeader(validHeader())
	mustEnterAssignments(t, sess)
	if _, err := sess.Submit("inspector.rao"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	sess.Reopen()
	if sess.Stage() != qaps.StageAssigning {
		t.Fatalf("stage after reopen = %s, want assigning", sess.Stage())
	}
	if _, err := sess.Submit("inspector.rao"); err != nil {
		t.Errorf("Submit after reopen failed: %v", err)
	}
}

func TestReopenBeforeFinalizeIsNoop(t *testing.T) {
	sess := qaps.NewSession(testCatalog(), 1)
	sess.Reopen()
	if sess.Stage() != qaps.StageReviewing {
		t.Errorf("stage = %s, want reviewing", sess.Stage())
	}
}
