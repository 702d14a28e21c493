package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Entity is satisfied by any tenant-scoped model through an embedded Key.
type Entity[T any] interface {
	*T
	TenantKey() *Key
	TableName() string
}

// Accessor is the single choke point for tenant-scoped data access. Every
// query and write it produces carries the bound tenant pair; repositories
// never touch tenant-scoped tables except through one of these.
type Accessor[T any, PT Entity[T]] struct {
	db  *gorm.DB
	seq SequenceRepository
	tc  Context
}

// Bind builds a request-scoped accessor. It fails closed: a context that
// is not fully populated never yields an accessor, and therefore never
// yields an unscoped query.
func Bind[T any, PT Entity[T]](db *gorm.DB, seq SequenceRepository, tc Context) (*Accessor[T, PT], error) {
	if db == nil {
		return nil, errors.New("tenancy: nil db handle")
	}
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return &Accessor[T, PT]{db: db, seq: seq, tc: tc}, nil
}

func (a *Accessor[T, PT]) Tenant() Context { return a.tc }

// WithTx rebinds the accessor to a transaction handle. The tenant pair is
// carried over unchanged.
func (a *Accessor[T, PT]) WithTx(tx *gorm.DB) *Accessor[T, PT] {
	return &Accessor[T, PT]{db: tx, seq: a.seq, tc: a.tc}
}

// Scoped returns a query builder already constrained to the bound tenant,
// for module-specific reads (search, status filters, counts).
func (a *Accessor[T, PT]) Scoped(ctx context.Context) *gorm.DB {
	var zero T
	return a.db.WithContext(ctx).Model(PT(&zero)).Scopes(Scope(a.tc))
}

// Create stamps the entity with the bound tenant pair, allocates the next
// per-tenant local id and a fresh external uuid, then inserts it.
func (a *Accessor[T, PT]) Create(ctx context.Context, e PT) error {
	k := e.TenantKey()
	k.AccountID = a.tc.AccountID
	k.CompanyID = a.tc.CompanyID
	if k.UUID == uuid.Nil {
		k.UUID = uuid.New()
	}
	if k.ID == 0 {
		next, err := a.seq.NextID(ctx, a.tc, e.TableName())
		if err != nil {
			return err
		}
		k.ID = next
	}

	if err := a.db.WithContext(ctx).Create(e).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// ResolveByUUID looks a record up by its external identifier within the
// bound tenant only. A uuid owned by another tenant answers ErrNotFound,
// indistinguishable from a uuid that does not exist at all.
func (a *Accessor[T, PT]) ResolveByUUID(ctx context.Context, id uuid.UUID) (PT, error) {
	var e T
	err := a.db.WithContext(ctx).Scopes(Scope(a.tc)).First(&e, "uuid = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Save persists changes to an entity previously resolved through this
// accessor. An entity stamped for another tenant aborts the operation.
func (a *Accessor[T, PT]) Save(ctx context.Context, e PT) error {
	if !e.TenantKey().BelongsTo(a.tc) {
		return ErrScopeViolation
	}
	if err := a.db.WithContext(ctx).Save(e).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// DeleteByUUID resolves first, so a uuid under another tenant answers
// ErrNotFound and the delete predicate always carries the tenant pair.
func (a *Accessor[T, PT]) DeleteByUUID(ctx context.Context, id uuid.UUID) error {
	e, err := a.ResolveByUUID(ctx, id)
	if err != nil {
		return err
	}

	var zero T
	res := a.db.WithContext(ctx).
		Scopes(Scope(a.tc)).
		Where("id = ?", e.TenantKey().ID).
		Delete(PT(&zero))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every record of the bound tenant, optionally narrowed by
// extra scopes (which compose on top of the tenant filter, never instead
// of it).
func (a *Accessor[T, PT]) List(ctx context.Context, conds ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	q := a.db.WithContext(ctx).Scopes(Scope(a.tc))
	for _, c := range conds {
		q = c(q)
	}

	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// mapWriteError promotes composite-key and uuid collisions to
// ErrIntegrity. Unique violations on business columns (per-tenant codes,
// emails) pass through untouched for the module error mappers.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		name := pgErr.ConstraintName
		if strings.HasSuffix(name, "_pkey") || strings.Contains(name, "uuid") {
			return fmt.Errorf("%w: constraint %s", ErrIntegrity, name)
		}
	}
	return err
}
