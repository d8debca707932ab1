package qaps

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/pkg/handlers"
	"github.com/aarnav1729/qap/pkg/pagination"
	"github.com/aarnav1729/qap/pkg/routes"
)

// Handler provides HTTP endpoints for QAP records and editing sessions.
type Handler struct {
	sys        System
	catalog    *catalog.Catalog
	sessions   *Sessions
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// StartSessionRequest opens a new editing session: either seeded from the
// baseline catalog at the given starting sequence number, or from an
// existing record when QAPID is set.
type StartSessionRequest struct {
	StartSequence int        `json:"start_sequence"`
	QAPID         *uuid.UUID `json:"qap_id,omitempty"`
}

// DecisionRequest records a match decision for one item.
type DecisionRequest struct {
	Sequence int      `json:"sequence"`
	Decision Decision `json:"decision"`
}

// CustomerSpecRequest sets the customer-accepted specification text for one item.
type CustomerSpecRequest struct {
	Sequence int    `json:"sequence"`
	Value    string `json:"value"`
}

// AssignRequest sets one department flag on a mismatched item.
type AssignRequest struct {
	Sequence   int        `json:"sequence"`
	Department Department `json:"department"`
	Value      bool       `json:"value"`
}

// FinalizeRequest carries the acting user for draft saves and submissions.
type FinalizeRequest struct {
	Actor string `json:"actor"`
}

// SessionView is the snapshot of an editing session returned to clients,
// with items partitioned into their display tables.
type SessionView struct {
	ID          uuid.UUID     `json:"id"`
	Stage       Stage         `json:"stage"`
	Header      Header        `json:"header"`
	MQP         []Item        `json:"mqp"`
	VisualEL    []Item        `json:"visual_el"`
	Assignments AssignmentMap `json:"assignments"`
}

// NewHandler creates a Handler with the given system, catalog, logger, and
// pagination config, backed by a fresh session store.
func NewHandler(
	sys System,
	cat *catalog.Catalog,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		catalog:    cat,
		sessions:   NewSessions(),
		logger:     logger.With("handler", "qaps"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for QAP endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/qaps",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/sessions", Handler: h.StartSession},
			{Method: "GET", Pattern: "/sessions/{id}", Handler: h.Session},
			{Method: "PUT", Pattern: "/sessions/{id}/header", Handler: h.SetHeader},
			{Method: "POST", Pattern: "/sessions/{id}/decisions", Handler: h.Decide},
			{Method: "PUT", Pattern: "/sessions/{id}/customer-specification", Handler: h.EditCustomerSpecification},
			{Method: "POST", Pattern: "/sessions/{id}/assignments", Handler: h.EnterAssignments},
			{Method: "PUT", Pattern: "/sessions/{id}/assignments", Handler: h.Assign},
			{Method: "POST", Pattern: "/sessions/{id}/review", Handler: h.ReturnToReview},
			{Method: "POST", Pattern: "/sessions/{id}/draft", Handler: h.SaveDraft},
			{Method: "POST", Pattern: "/sessions/{id}/submit", Handler: h.Submit},
		},
	}
}

// List returns a paginated list of records with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single record by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	record, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching records.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes a record by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StartSession opens an editing session. A new plan is seeded from the
// catalog at the requested starting sequence number; an edit session loads
// the stored record instead.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var sess *Session
	if req.QAPID != nil {
		record, err := h.sys.Find(r.Context(), *req.QAPID)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		sess = EditSession(record)
	} else {
		start := req.StartSequence
		if start < 1 {
			start = 1
		}
		sess = NewSession(h.catalog, start)
	}

	h.sessions.Add(sess)
	h.logger.Info("session started", "id", sess.ID(), "editing", req.QAPID != nil)

	handlers.RespondJSON(w, http.StatusCreated, h.view(sess))
}

// Session returns a snapshot of an editing session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// SetHeader replaces the session's header fields.
func (h *Handler) SetHeader(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var header Header
	if err := json.NewDecoder(r.Body).Decode(&header); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	sess.SetHeader(header)
	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// Decide records a match decision for one item in the session.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := sess.Decide(req.Sequence, req.Decision); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// EditCustomerSpecification sets the customer-accepted text for one item.
func (h *Handler) EditCustomerSpecification(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CustomerSpecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := sess.SetCustomerSpecification(req.Sequence, req.Value); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// EnterAssignments transitions the session into the assignment stage.
func (h *Handler) EnterAssignments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.EnterAssignments(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// ReturnToReview moves the session back to the item review stage.
func (h *Handler) ReturnToReview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.ReturnToReview(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// Assign sets a department flag on a mismatched item.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := sess.Assign(req.Sequence, req.Department, req.Value); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.view(sess))
}

// SaveDraft finalizes the session as a draft, persists it, and closes the session.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, func(sess *Session, actor string) (*QAP, error) {
		return sess.Draft(actor)
	})
}

// Submit finalizes the session as a level-2 submission, persists it, and
// closes the session. Header validation failures leave the session open.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, func(sess *Session, actor string) (*QAP, error) {
		return sess.Submit(actor)
	})
}

func (h *Handler) finalize(
	w http.ResponseWriter,
	r *http.Request,
	build func(*Session, string) (*QAP, error),
) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if req.Actor == "" {
		handlers.RespondError(
			w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: actor is required", ErrInvalidRequest),
		)
		return
	}

	record, err := build(sess, req.Actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	saved, err := h.sys.Save(r.Context(), record)
	if err != nil {
		sess.Reopen()
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.sessions.Remove(sess.ID())
	handlers.RespondJSON(w, http.StatusCreated, saved)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return nil, false
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return sess, true
}

func (h *Handler) view(sess *Session) SessionView {
	mqp, visualEL := sess.Grouped()
	return SessionView{
		ID:          sess.ID(),
		Stage:       sess.Stage(),
		Header:      sess.Header(),
		MQP:         mqp,
		VisualEL:    visualEL,
		Assignments: sess.Assignments(),
	}
}
