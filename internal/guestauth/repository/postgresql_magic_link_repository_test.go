package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guestauthDomain "github.com/logbarron/guestgate/internal/guestauth/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgreSQLMagicLinkRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLMagicLinkRepository(db)

	link := &guestauthDomain.MagicLink{
		ID:        uuid.Must(uuid.NewV7()),
		GuestID:   uuid.Must(uuid.NewV7()),
		TokenHash: "hash-abc",
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(15 * time.Minute),
	}

	mock.ExpectExec("INSERT INTO magic_links").
		WithArgs(link.ID, link.GuestID, link.TokenHash, link.IssuedAt, link.ExpiresAt, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), link)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLMagicLinkRepository_GetByTokenHash(t *testing.T) {
	t.Run("returns the link", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMagicLinkRepository(db)

		id := uuid.Must(uuid.NewV7())
		guestID := uuid.Must(uuid.NewV7())
		issuedAt := time.Now().UTC()
		expiresAt := issuedAt.Add(15 * time.Minute)

		rows := sqlmock.NewRows(
			[]string{"id", "guest_id", "token_hash", "issued_at", "expires_at", "used_at"},
		).AddRow(id, guestID, "hash-abc", issuedAt, expiresAt, nil)

		mock.ExpectQuery("SELECT (.+) FROM magic_links WHERE token_hash").
			WithArgs("hash-abc").
			WillReturnRows(rows)

		link, err := repo.GetByTokenHash(context.Background(), "hash-abc")
		require.NoError(t, err)
		assert.Equal(t, id, link.ID)
		assert.Equal(t, guestID, link.GuestID)
		assert.False(t, link.IsUsed())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMagicLinkRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM magic_links WHERE token_hash").
			WithArgs("unknown").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByTokenHash(context.Background(), "unknown")
		assert.ErrorIs(t, err, guestauthDomain.ErrMagicLinkNotFound)
	})
}

func TestPostgreSQLMagicLinkRepository_MarkUsed(t *testing.T) {
	t.Run("first redemption wins", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMagicLinkRepository(db)

		linkID := uuid.Must(uuid.NewV7())
		usedAt := time.Now().UTC()

		mock.ExpectExec("UPDATE magic_links SET used_at").
			WithArgs(usedAt, linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkUsed(context.Background(), linkID, usedAt)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("already used yields no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMagicLinkRepository(db)

		linkID := uuid.Must(uuid.NewV7())
		usedAt := time.Now().UTC()

		mock.ExpectExec("UPDATE magic_links SET used_at").
			WithArgs(usedAt, linkID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkUsed(context.Background(), linkID, usedAt)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPostgreSQLMagicLinkRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLMagicLinkRepository(db)

	before := time.Now().UTC()

	mock.ExpectExec("DELETE FROM magic_links WHERE expires_at").
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
