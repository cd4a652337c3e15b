package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dtroode/envelope-relay/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository deletes identities together with their mailboxes.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Delete removes the identity's envelopes, its refresh tokens and then the
// identity row in one transaction. Either all of it commits or none of it.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		n, err := NewEnvelopeRepository(tx).DeleteAllByRecipient(ctx, id)
		if err != nil {
			return err
		}

		if err := NewRefreshTokenRepository(tx).DeleteAllByIdentity(ctx, id); err != nil {
			return err
		}

		if err := NewIdentityRepository(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrUnknownIdentity
			}
			return err
		}

		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
