package store

import (
	"context"
	"fmt"

	"recyloop/internal/utils"
	"recyloop/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentTableName = "recyloop.documents"

var documentColumns = utils.StructTagValues(types.Document{})

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// DocumentsByFormID retrieves all documents for a form in insertion order,
// which matches the fixed residue dispatch order.
func (r *DocumentRepository) DocumentsByFormID(ctx context.Context, formID string) ([]*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"form_id": formID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents-by-form query: %w", err)
	}

	documents := make([]*types.Document, 0)
	err = pgxscan.Select(ctx, r.pool, &documents, query, args...)
	if err != nil {
		return nil, types.PersistenceError(fmt.Errorf("failed to fetch documents for form: %w", err))
	}

	return documents, nil
}

// SumAmountByProfileType totals document amounts across every form owned by
// users of the given profile type. Zero when nothing matches.
func (r *DocumentRepository) SumAmountByProfileType(ctx context.Context, profileType types.ProfileType) (float64, error) {
	query, args, err := psql().
		Select("COALESCE(SUM(d.amount), 0)").
		From(documentTableName + " d").
		Join(formTableName + " f ON f.id = d.form_id").
		Join(userTableName + " u ON u.id = f.user_id").
		Where(sq.Eq{"u.profile_type": profileType}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate amount sum query: %w", err)
	}

	var total float64
	err = pgxscan.Get(ctx, r.pool, &total, query, args...)
	if err != nil {
		return 0, types.PersistenceError(fmt.Errorf("failed to sum document amounts: %w", err))
	}

	return total, nil
}
