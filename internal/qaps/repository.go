package qaps

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/pkg/pagination"
	"github.com/aarnav1729/qap/pkg/query"
	"github.com/aarnav1729/qap/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a QAP repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "qaps"),
		pagination: pagination,
	}
}

func (r *repo) Handler(cat *catalog.Catalog) *Handler {
	return NewHandler(r, cat, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[QAP], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CustomerName", "ProjectName", "ProductType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count qaps: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanQAP)
	if err != nil {
		return nil, fmt.Errorf("query qaps: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*QAP, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	record, err := repository.QueryOne(ctx, r.db, q, args, scanQAP)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &record, nil
}

// Save upserts a finalized record. Inserts keep the record's creation
// timestamp; updates preserve the stored one and refresh everything else.
func (r *repo) Save(ctx context.Context, record *QAP) (*QAP, error) {
	items, err := marshalColumn(record.Items, "items")
	if err != nil {
		return nil, err
	}
	assignments, err := marshalColumn(record.Assignments, "assignments")
	if err != nil {
		return nil, err
	}
	timeline, err := marshalColumn(record.Timeline, "timeline")
	if err != nil {
		return nil, err
	}
	levelStarts, err := marshalColumn(record.LevelStartTimes, "level_start_times")
	if err != nil {
		return nil, err
	}
	levelEnds, err := marshalColumn(record.LevelEndTimes, "level_end_times")
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO qaps(
			id, customer_name, project_name, order_quantity, product_type, plant,
			status, current_level, submitted_by, submitted_at,
			items, assignments, timeline, level_start_times, level_end_times,
			created_at, last_modified_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			project_name = EXCLUDED.project_name,
			order_quantity = EXCLUDED.order_quantity,
			product_type = EXCLUDED.product_type,
			plant = EXCLUDED.plant,
			status = EXCLUDED.status,
			current_level = EXCLUDED.current_level,
			submitted_by = EXCLUDED.submitted_by,
			submitted_at = EXCLUDED.submitted_at,
			items = EXCLUDED.items,
			assignments = EXCLUDED.assignments,
			timeline = EXCLUDED.timeline,
			level_start_times = EXCLUDED.level_start_times,
			level_end_times = EXCLUDED.level_end_times,
			last_modified_at = EXCLUDED.last_modified_at
		RETURNING
			id, customer_name, project_name, order_quantity, product_type, plant,
			status, current_level, submitted_by, submitted_at,
			items, assignments, timeline, level_start_times, level_end_times,
			created_at, last_modified_at`

	args := []any{
		record.ID,
		record.CustomerName,
		record.ProjectName,
		record.OrderQuantity,
		record.ProductType,
		record.Plant,
		record.Status,
		record.CurrentLevel,
		record.SubmittedBy,
		record.SubmittedAt,
		items,
		assignments,
		timeline,
		levelStarts,
		levelEnds,
		record.CreatedAt,
		record.LastModifiedAt,
	}

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (QAP, error) {
		return repository.QueryOne(ctx, tx, q, args, scanQAP)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"qap saved",
		"id", saved.ID,
		"status", saved.Status,
		"level", saved.CurrentLevel,
	)
	return &saved, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM qaps WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("qap deleted", "id", id)
	return nil
}
