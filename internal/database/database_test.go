package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrate_SQLiteMemory(t *testing.T) {
	db, err := Connect(":memory:", Options{})
	require.NoError(t, err)

	type note struct {
		ID   string `gorm:"primaryKey"`
		Body string
	}
	require.NoError(t, Migrate(db, &note{}))
	assert.True(t, db.Migrator().HasTable(&note{}))

	require.NoError(t, db.Create(&note{ID: "a", Body: "x"}).Error)
	var got note
	require.NoError(t, db.First(&got, "id = ?", "a").Error)
	assert.Equal(t, "x", got.Body)
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost/db"))
	assert.True(t, isPostgres("postgresql://localhost/db"))
	assert.False(t, isPostgres("rental.db"))
	assert.False(t, isPostgres(":memory:"))
}
