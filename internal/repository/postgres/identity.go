package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dtroode/envelope-relay/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	db DBTX
}

func NewIdentityRepository(db DBTX) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

// Create inserts identity. A taken external id yields model.ErrDuplicateIdentity
// and writes nothing. The registration time and the initial watermark are
// taken from the database clock, the same clock envelopes are stamped with.
func (r *IdentityRepository) Create(ctx context.Context, identity model.Identity) (model.Identity, error) {
	query := `INSERT INTO identities (external_id, credential_hash, registered_at, messages_last_checked_at)
			  VALUES ($1, $2, now(), now())
			  ON CONFLICT (external_id) DO NOTHING
			  RETURNING id, external_id, credential_hash, registered_at, messages_last_checked_at`

	var saved model.Identity
	err := r.db.QueryRowContext(ctx, query,
		identity.ExternalID, identity.CredentialHash,
	).Scan(
		&saved.ID, &saved.ExternalID, &saved.CredentialHash, &saved.RegisteredAt, &saved.MessagesLastCheckedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || hasSQLState(err, sqlStateUniqueViolation) {
			return model.Identity{}, model.ErrDuplicateIdentity
		}
		return model.Identity{}, persistenceError("create identity", err)
	}

	return saved, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (model.Identity, error) {
	query := `SELECT id, external_id, credential_hash, registered_at, messages_last_checked_at
			  FROM identities WHERE id = $1`

	return r.getOne(ctx, "get identity by id", query, id)
}

func (r *IdentityRepository) GetByExternalID(ctx context.Context, externalID string) (model.Identity, error) {
	query := `SELECT id, external_id, credential_hash, registered_at, messages_last_checked_at
			  FROM identities WHERE external_id = $1`

	return r.getOne(ctx, "get identity by external id", query, externalID)
}

func (r *IdentityRepository) getOne(ctx context.Context, op, query string, arg any) (model.Identity, error) {
	var identity model.Identity
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&identity.ID, &identity.ExternalID, &identity.CredentialHash,
		&identity.RegisteredAt, &identity.MessagesLastCheckedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, persistenceError(op, err)
	}

	return identity, nil
}

func (r *IdentityRepository) UpdateCredentialHash(ctx context.Context, id int64, hash []byte) error {
	const query = `UPDATE identities SET credential_hash = $2 WHERE id = $1`

	return r.execOne(ctx, "update credential hash", query, id, hash)
}

func (r *IdentityRepository) GetWatermark(ctx context.Context, id int64) (time.Time, error) {
	const query = `SELECT messages_last_checked_at FROM identities WHERE id = $1`

	var at time.Time
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, model.ErrNotFound
		}
		return time.Time{}, persistenceError("get watermark", err)
	}

	return at, nil
}

// SetWatermark moves the watermark forward. An older value leaves it unchanged.
func (r *IdentityRepository) SetWatermark(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE identities
			  SET messages_last_checked_at = GREATEST(messages_last_checked_at, $2)
			  WHERE id = $1`

	return r.execOne(ctx, "set watermark", query, id, at)
}

// Delete removes the identity row only. Use AccountRepository to remove an
// identity together with its mailbox.
func (r *IdentityRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM identities WHERE id = $1`

	return r.execOne(ctx, "delete identity", query, id)
}

func (r *IdentityRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistenceError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError(op, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}
