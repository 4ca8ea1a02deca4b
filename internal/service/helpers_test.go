package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "inventory_test.db"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedActor(t *testing.T, db *gorm.DB, email string) Actor {
	t.Helper()

	user := &model.User{Email: email, RegisteredOn: time.Now()}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, repository.NewUserRepo(db).Create(context.Background(), user))
	return Actor{ID: user.ID, Email: user.Email}
}

func seedComponent(t *testing.T, db *gorm.DB, sku, description string) *model.Component {
	t.Helper()

	component := &model.Component{SKU: sku, Description: description}
	require.NoError(t, repository.NewComponentRepo(db).Create(context.Background(), component))
	return component
}
