package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velodz/backoffice/internal/domain"
)

func TestUserRepository_CreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "pending_balance", "created_at"}).
			AddRow(int64(1), "manager", "hash", domain.RoleStaff, decimal.Zero, time.Now())

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("manager", "hash", domain.RoleStaff).
			WillReturnRows(rows)

		user, err := repo.CreateUser(ctx, "manager", "hash", domain.RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, domain.RoleStaff, user.Role)
		assert.True(t, user.PendingBalance.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate login", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("manager", "hash", domain.RoleStaff).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := repo.CreateUser(ctx, "manager", "hash", domain.RoleStaff)
		assert.ErrorIs(t, err, ErrUserExists)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "pending_balance", "created_at"}).
			AddRow(int64(3), "courier", "hash", domain.RoleDelivery, decimal.NewFromInt(1500), time.Now())

		mock.ExpectQuery(`SELECT id, login, password_hash, role, pending_balance, created_at`).
			WithArgs("courier").
			WillReturnRows(rows)

		user, err := repo.GetUserByLogin(ctx, "courier")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDelivery, user.Role)
		assert.True(t, user.PendingBalance.Equal(decimal.NewFromInt(1500)))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, login, password_hash, role, pending_balance, created_at`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetUserByLogin(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "pending_balance", "created_at"}).
			AddRow(int64(1), "manager", "hash", domain.RoleStaff, decimal.Zero, time.Now())

		mock.ExpectQuery(`SELECT id, login, password_hash, role, pending_balance, created_at`).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "manager", user.Login)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, login, password_hash, role, pending_balance, created_at`).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetUserByID(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
