package database_test

import (
	"errors"
	"fmt"
	"testing"

	"snapapp/internal/database"
	"snapapp/internal/database/dbtest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrate_CreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, table := range []string{"users", "logins", "properties"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, database.IsPostgres("postgres://u:p@h/db"))
	assert.True(t, database.IsPostgres("postgresql://h/db"))
	assert.False(t, database.IsPostgres("snapapp.db"))
	assert.False(t, database.IsPostgres("file:x?mode=memory"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.True(t, database.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := dbtest.New(t)

	insert := func() error {
		return db.Exec(`INSERT INTO users (id, email, password_hash, salt, role, created_on)
			VALUES ('u1', 'dup@x.com', 'h', x'00', 'Client', CURRENT_TIMESTAMP)`).Error
	}
	require.NoError(t, insert())

	err := insert()
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}
