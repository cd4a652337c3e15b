//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/envelope-relay/internal/model"
	repo "github.com/dtroode/envelope-relay/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "relay_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/relay_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()

	conn, err := repo.NewConnection(context.Background(), repo.ConnectionConfig{
		DSN:              dsn,
		MaxConns:         5,
		StatementTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func createIdentity(t *testing.T, ir *repo.IdentityRepository, externalID string) model.Identity {
	t.Helper()

	identity, err := ir.Create(context.Background(), model.Identity{ExternalID: externalID})
	require.NoError(t, err)

	return identity
}

func TestRepositories_IdentityLifecycle(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ir := repo.NewIdentityRepository(conn.DB)

	created := createIdentity(t, ir, "lifecycle-0001")
	assert.False(t, created.RegisteredAt.IsZero())
	assert.Equal(t, created.RegisteredAt, created.MessagesLastCheckedAt)

	_, err := ir.Create(ctx, model.Identity{ExternalID: "lifecycle-0001"})
	require.ErrorIs(t, err, model.ErrDuplicateIdentity)

	byExt, err := ir.GetByExternalID(ctx, "lifecycle-0001")
	require.NoError(t, err)
	require.Equal(t, created.ID, byExt.ID)

	require.NoError(t, ir.UpdateCredentialHash(ctx, created.ID, []byte("hash")))
	byID, err := ir.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("hash"), byID.CredentialHash)

	mark := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, ir.SetWatermark(ctx, created.ID, mark))
	got, err := ir.GetWatermark(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mark.Equal(got))

	require.NoError(t, ir.SetWatermark(ctx, created.ID, mark.Add(-time.Hour)))
	got, err = ir.GetWatermark(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, mark.Equal(got), "watermark must not move backwards")

	_, err = ir.GetByID(ctx, created.ID+1000)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRepositories_ConcurrentRegistration(t *testing.T) {
	conn := connect(t)
	ir := repo.NewIdentityRepository(conn.DB)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ir.Create(context.Background(), model.Identity{ExternalID: "race-000001"})
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, model.ErrDuplicateIdentity):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)
}

func TestEnvelopeRepository_IdempotentCreateAndWatermarkFilter(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ir := repo.NewIdentityRepository(conn.DB)
	er := repo.NewEnvelopeRepository(conn.DB)

	sender := createIdentity(t, ir, "sender-0001")
	recipient := createIdentity(t, ir, "recipient-01")

	e := model.Envelope{
		SenderID:         sender.ID,
		RecipientID:      recipient.ID,
		UniqueID:         "u-1",
		SentFromSenderAt: time.Now().UTC(),
		IsEncrypted:      true,
		EncryptedID:      "enc",
		HMAC:             []byte("mac"),
		Body:             []byte("body-1"),
	}
	first, err := er.Create(ctx, e)
	require.NoError(t, err)
	assert.False(t, first.SavedAt.IsZero())

	_, err = er.Create(ctx, e)
	require.ErrorIs(t, err, model.ErrDuplicateMessage)

	since, err := er.SyncPoint(ctx, recipient.ID)
	require.NoError(t, err)
	assert.True(t, since.After(first.SavedAt))

	e.UniqueID = "u-2"
	e.Body = []byte("body-2")
	second, err := er.Create(ctx, e)
	require.NoError(t, err)
	assert.True(t, second.SavedAt.After(since))

	all, err := er.ListByRecipient(ctx, recipient.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	later, err := er.ListByRecipient(ctx, recipient.ID, &since)
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, second.ID, later[0].ID)

	_, err = er.SyncPoint(ctx, recipient.ID+1000)
	require.ErrorIs(t, err, model.ErrNotFound)

	e.RecipientID = recipient.ID + 1000
	e.UniqueID = "u-3"
	_, err = er.Create(ctx, e)
	require.ErrorIs(t, err, model.ErrUnknownIdentity)

	n, err := er.DeleteByIDs(ctx, sender.ID, []int64{first.ID})
	require.NoError(t, err)
	assert.Zero(t, n, "ids from another mailbox must not be deleted")

	n, err = er.DeleteByIDs(ctx, recipient.ID, []int64{first.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAccountRepository_Cascade(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ir := repo.NewIdentityRepository(conn.DB)
	er := repo.NewEnvelopeRepository(conn.DB)
	ar := repo.NewAccountRepository(conn.DB)

	sender := createIdentity(t, ir, "cascade-snd1")
	victim := createIdentity(t, ir, "cascade-rcp1")

	for i := 0; i < 3; i++ {
		_, err := er.Create(ctx, model.Envelope{
			SenderID:         sender.ID,
			RecipientID:      victim.ID,
			UniqueID:         fmt.Sprintf("c-%d", i),
			SentFromSenderAt: time.Now(),
			Body:             []byte("x"),
		})
		require.NoError(t, err)
	}

	n, err := ar.Delete(ctx, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = ir.GetByID(ctx, victim.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	left, err := er.ListByRecipient(ctx, victim.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = ar.Delete(ctx, victim.ID)
	require.ErrorIs(t, err, model.ErrUnknownIdentity)
}
