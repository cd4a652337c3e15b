package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dtroode/envelope-relay/internal/model"
)

var _ model.EnvelopeStore = (*EnvelopeRepository)(nil)

type EnvelopeRepository struct {
	db DBTX
}

func NewEnvelopeRepository(db DBTX) *EnvelopeRepository {
	return &EnvelopeRepository{
		db: db,
	}
}

// Create stores envelope unless the sender already used its unique id, in
// which case model.ErrDuplicateMessage is returned and nothing is written.
//
// saved_at is stamped by the database clock while the recipient row is held
// with FOR KEY SHARE, so a concurrent SyncPoint on the same mailbox either
// waits for this insert to commit or runs before the stamp is taken.
func (r *EnvelopeRepository) Create(ctx context.Context, envelope model.Envelope) (model.Envelope, error) {
	query := `
		INSERT INTO envelopes (sender_id, recipient_id, unique_id, sent_from_sender_at,
		                       is_encrypted, encrypted_id, hmac, body, saved_at)
		SELECT $1, recipient.id, $3, $4, $5, $6, $7, $8, clock_timestamp()
		FROM (SELECT id FROM identities WHERE id = $2 FOR KEY SHARE) AS recipient
		ON CONFLICT (sender_id, unique_id) DO NOTHING
		RETURNING id, saved_at`

	err := r.db.QueryRowContext(ctx, query,
		envelope.SenderID, envelope.RecipientID, envelope.UniqueID, envelope.SentFromSenderAt,
		envelope.IsEncrypted, envelope.EncryptedID, envelope.HMAC, envelope.Body,
	).Scan(&envelope.ID, &envelope.SavedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Envelope{}, r.explainSkippedInsert(ctx, envelope.RecipientID)
		case hasSQLState(err, sqlStateUniqueViolation):
			return model.Envelope{}, model.ErrDuplicateMessage
		case hasSQLState(err, sqlStateForeignKeyViolation):
			// recipient was deleted after it was resolved
			return model.Envelope{}, model.ErrUnknownIdentity
		}
		return model.Envelope{}, persistenceError("create envelope", err)
	}

	return envelope, nil
}

// explainSkippedInsert tells a missing recipient apart from a duplicate
// unique id when the insert returned no row.
func (r *EnvelopeRepository) explainSkippedInsert(ctx context.Context, recipientID int64) error {
	const query = `SELECT EXISTS (SELECT 1 FROM identities WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&exists); err != nil {
		return persistenceError("check recipient", err)
	}
	if !exists {
		return model.ErrUnknownIdentity
	}
	return model.ErrDuplicateMessage
}

// SyncPoint waits for in-flight inserts into the recipient's mailbox and
// returns the database time right after them. Every envelope stamped before
// the returned time is visible to reads that start afterwards.
func (r *EnvelopeRepository) SyncPoint(ctx context.Context, recipientID int64) (time.Time, error) {
	const query = `
		SELECT clock_timestamp()
		FROM (SELECT id FROM identities WHERE id = $1 FOR UPDATE) AS mailbox`

	var at time.Time
	err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, model.ErrNotFound
	}
	if err != nil {
		return time.Time{}, persistenceError("sync mailbox", err)
	}

	return at, nil
}

// ListByRecipient returns the recipient's envelopes ordered by saved_at. A
// non-nil savedSince keeps only envelopes saved at or after it.
func (r *EnvelopeRepository) ListByRecipient(ctx context.Context, recipientID int64, savedSince *time.Time) ([]model.Envelope, error) {
	query := `
		SELECT id, sender_id, recipient_id, unique_id, sent_from_sender_at,
		       is_encrypted, encrypted_id, hmac, body, saved_at
		FROM envelopes
		WHERE recipient_id = $1
		ORDER BY saved_at, id`
	args := []any{recipientID}

	if savedSince != nil {
		query = `
		SELECT id, sender_id, recipient_id, unique_id, sent_from_sender_at,
		       is_encrypted, encrypted_id, hmac, body, saved_at
		FROM envelopes
		WHERE recipient_id = $1 AND saved_at >= $2
		ORDER BY saved_at, id`
		args = append(args, *savedSince)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("list envelopes", err)
	}
	defer rows.Close()

	envelopes := make([]model.Envelope, 0)
	for rows.Next() {
		var e model.Envelope
		err := rows.Scan(
			&e.ID, &e.SenderID, &e.RecipientID, &e.UniqueID, &e.SentFromSenderAt,
			&e.IsEncrypted, &e.EncryptedID, &e.HMAC, &e.Body, &e.SavedAt,
		)
		if err != nil {
			return nil, persistenceError("scan envelope", err)
		}
		envelopes = append(envelopes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("list envelopes", err)
	}

	return envelopes, nil
}

// DeleteByIDs removes the listed envelopes that belong to the recipient.
// Ids owned by other mailboxes are ignored.
func (r *EnvelopeRepository) DeleteByIDs(ctx context.Context, recipientID int64, ids []int64) (int64, error) {
	const query = `DELETE FROM envelopes WHERE recipient_id = $1 AND id = ANY($2)`

	res, err := r.db.ExecContext(ctx, query, recipientID, ids)
	if err != nil {
		return 0, persistenceError("delete envelopes", err)
	}

	return rowsAffected(res, "delete envelopes")
}

func (r *EnvelopeRepository) DeleteAllByRecipient(ctx context.Context, recipientID int64) (int64, error) {
	const query = `DELETE FROM envelopes WHERE recipient_id = $1`

	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, persistenceError("delete mailbox", err)
	}

	return rowsAffected(res, "delete mailbox")
}

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistenceError(op, err)
	}
	return n, nil
}
