package tenancy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/sequence_repo_mock.go -package=mock . SequenceRepository

// SequenceRepository allocates the next per-tenant local id for a given
// entity kind (its table name). Allocation strategy: a tenant_sequences
// row per (account_id, company_id, kind) incremented with an atomic
// upsert, so concurrent creates under the same tenant never hand out the
// same id.
type SequenceRepository interface {
	NextID(ctx context.Context, tc Context, kind string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) NextID(ctx context.Context, tc Context, kind string) (int64, error) {
	if err := tc.Validate(); err != nil {
		return 0, err
	}

	var nextValue int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO tenant_sequences (account_id, company_id, kind, last_value, updated_at)
		VALUES (?, ?, ?, 1, now())
		ON CONFLICT (account_id, company_id, kind) DO UPDATE
		SET last_value = tenant_sequences.last_value + 1, updated_at = now()
		RETURNING last_value
	`, tc.AccountID, tc.CompanyID, kind).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
