package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/models"
)

func TestOpen_SQLiteMigratesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.CartItem{}, "idx_cart_product"))
	require.NoError(t, Ping(ctx, db))
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, config.DriverSQLite, "")
	require.Error(t, err)

	_, err = Open(ctx, "mysql", "dsn")
	require.Error(t, err)
}
