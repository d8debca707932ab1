package qaps

import (
	"context"

	"github.com/google/uuid"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/pkg/pagination"
)

// System defines the public contract for QAP domain operations. Save is the
// external persistence collaborator for the editing session: records passed
// to it are always fully formed and need no further mutation before storage.
type System interface {
	Handler(cat *catalog.Catalog) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[QAP], error)

	Find(ctx context.Context, id uuid.UUID) (*QAP, error)
	Save(ctx context.Context, record *QAP) (*QAP, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
