package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/config"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/service"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repo.New(db)
}

func seedAdmin(t *testing.T, r *repo.GormRepo) *models.User {
	t.Helper()
	admin := &models.User{
		ID:    "admin1",
		Name:  "Admin User",
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
	require.NoError(t, r.CreateUser(context.Background(), admin))
	return admin
}

func seedCustomer(t *testing.T, r *repo.GormRepo, id, email string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Name: id, Email: email, Role: models.RoleCustomer}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedShop(t *testing.T, r *repo.GormRepo, shopID, ownerID string, approved bool) (*models.User, *models.Shop) {
	t.Helper()
	owner := &models.User{
		ID:             ownerID,
		Name:           ownerID,
		Email:          ownerID + "@example.com",
		Role:           models.RoleShopkeeper,
		ShopID:         shopID,
		CanAddProducts: approved,
	}
	shop := &models.Shop{ID: shopID, Name: shopID + " shop", OwnerID: ownerID, Approved: approved}
	require.NoError(t, r.CreateUser(context.Background(), owner))
	require.NoError(t, r.CreateShop(context.Background(), shop))
	return owner, shop
}

func seedCategory(t *testing.T, r *repo.GormRepo, id, name string) *models.Category {
	t.Helper()
	cat := &models.Category{ID: id, Name: name}
	require.NoError(t, r.CreateCategory(context.Background(), cat))
	return cat
}

func seedProduct(t *testing.T, r *repo.GormRepo, id, shopID, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:     id,
		Name:   id,
		Price:  decimal.RequireFromString(price),
		ShopID: shopID,
		Stock:  stock,
	}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}

// captureNotifier records automation dispatches for assertions.
type captureNotifier struct {
	mu       sync.Mutex
	subjects []string
}

func (n *captureNotifier) NotifyAdmin(_ context.Context, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
	return nil
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subjects)
}

func newEngine(r *repo.GormRepo, n service.Notifier) *service.Engine {
	return &service.Engine{Repo: r, Notifiers: []service.Notifier{n}}
}
