package store

import (
	"context"
	"fmt"
	"time"

	"recyloop/internal/utils"
	"recyloop/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const formTableName = "recyloop.forms"

var formColumns = utils.StructTagValues(types.Form{})

type FormRepository struct {
	pool *pgxpool.Pool
}

func NewFormRepository(pool *pgxpool.Pool) *FormRepository {
	return &FormRepository{pool: pool}
}

func (r *FormRepository) Form(ctx context.Context, formID string) (*types.Form, error) {
	query, args, err := psql().
		Select(formColumns...).
		From(formTableName).
		Where(sq.Eq{"id": formID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate form query: %w", err)
	}

	var form types.Form
	err = pgxscan.Get(ctx, r.pool, &form, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrFormNotFound
		}
		return nil, types.PersistenceError(fmt.Errorf("failed to fetch form: %w", err))
	}

	return &form, nil
}

// Forms lists forms newest first, optionally narrowed by authorization flag,
// owning user, or the owner's profile type.
func (r *FormRepository) Forms(ctx context.Context, filter types.FormFilter) ([]*types.Form, error) {
	builder := psql().
		Select(utils.PrefixSliceOfStrings("f", formColumns)...).
		From(formTableName + " f")

	if filter.ProfileType != nil {
		builder = builder.
			Join(userTableName + " u ON u.id = f.user_id").
			Where(sq.Eq{"u.profile_type": *filter.ProfileType})
	}

	if filter.Authorized != nil {
		builder = builder.Where(sq.Eq{"f.authorized": *filter.Authorized})
	}

	if filter.UserID != "" {
		builder = builder.Where(sq.Eq{"f.user_id": filter.UserID})
	}

	query, args, err := builder.OrderBy("f.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate forms query: %w", err)
	}

	forms := make([]*types.Form, 0)
	err = pgxscan.Select(ctx, r.pool, &forms, query, args...)
	if err != nil {
		return nil, types.PersistenceError(fmt.Errorf("failed to fetch forms: %w", err))
	}

	return forms, nil
}

// CreateWithDocuments persists a form and its per-category documents in a
// single transaction. Either every row lands or none do, so a failure part
// way through submission never leaves a form without its documents.
func (r *FormRepository) CreateWithDocuments(ctx context.Context, form *types.Form, documents []*types.Document) error {
	now := time.Now()
	form.CreatedAt = now
	form.UpdatedAt = now

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return types.PersistenceError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	query, args, err := psql().
		Insert(formTableName).
		SetMap(utils.StructToMap(form)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create form query: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return types.PersistenceError(fmt.Errorf("failed to create form: %w", err))
	}

	for _, document := range documents {
		document.FormID = form.ID
		document.CreatedAt = now

		query, args, err := psql().
			Insert(documentTableName).
			SetMap(utils.StructToMap(document)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate create document query: %w", err)
		}

		if _, err = tx.Exec(ctx, query, args...); err != nil {
			return types.PersistenceError(fmt.Errorf("failed to create document for %s: %w", document.ResidueType, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return types.PersistenceError(fmt.Errorf("failed to commit form creation: %w", err))
	}

	return nil
}

// UpdateAuthorization flips only the admin-authorization flag.
func (r *FormRepository) UpdateAuthorization(ctx context.Context, formID string, authorized bool) error {
	query, args, err := psql().
		Update(formTableName).
		Set("authorized", authorized).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": formID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update authorization query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return types.PersistenceError(fmt.Errorf("failed to update form authorization: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return types.ErrFormNotFound
	}

	return nil
}

// SetMetadataURL records where the form's published metadata lives. The
// value is overwritten unconditionally, so republication is idempotent.
func (r *FormRepository) SetMetadataURL(ctx context.Context, formID, metadataURL string) error {
	query, args, err := psql().
		Update(formTableName).
		Set("metadata_url", nullable(metadataURL)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": formID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate set metadata url query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return types.PersistenceError(fmt.Errorf("failed to set form metadata url: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return types.ErrFormNotFound
	}

	return nil
}
