package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "handle", "display_name"}).
		AddRow(1, "alice", "Alice A")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Handle)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByHandle(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "handle", "display_name"}).
		AddRow(2, "bob", "Bob B")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE handle = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("bob", 1).
		WillReturnRows(rows)

	user, err := repo.GetByHandle(context.Background(), "bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(2), user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryNotFoundIsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE handle = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "handle", "display_name"}))

	user, err := repo.GetByHandle(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}
