package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commandapi/db"
	"commandapi/testutils"
)

func TestApplyMigrations(t *testing.T) {
	dbConn, schema := testutils.NewTestDB(t)
	ctx := context.Background()

	t.Run("records applied files", func(t *testing.T) {
		applied := []string{}
		err := dbConn.SelectContext(ctx, &applied, "SELECT name FROM "+schema+".schema_migrations ORDER BY name")
		require.NoError(t, err)
		assert.Equal(t, []string{"001_create_commands.sql"}, applied)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, db.ApplyMigrations(ctx, dbConn, schema))

		var count int
		err := dbConn.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+schema+".schema_migrations")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects empty schema", func(t *testing.T) {
		err := db.ApplyMigrations(ctx, dbConn, " ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema cannot be empty")
	})
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := db.NewConnection("mysql", "root@tcp(localhost)/commands")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
