package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/service"
)

func TestUpdateRole(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.UserService{Repo: r}
	admin := seedAdmin(t, r)
	seedCustomer(t, r, "cust1", "c@example.com")
	ctx := context.Background()

	updated, err := svc.UpdateRole(ctx, admin, "cust1", models.RoleShopkeeper)
	require.NoError(t, err)
	require.Equal(t, models.RoleShopkeeper, updated.Role)

	_, err = svc.UpdateRole(ctx, admin, "cust1", "superuser")
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.UpdateRole(ctx, admin, "missing", models.RoleCustomer)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateShopkeeperPermission(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.UserService{Repo: r}
	admin := seedAdmin(t, r)
	seedCustomer(t, r, "cust1", "c@example.com")
	owner, _ := seedShop(t, r, "shopId3", "shop3", false)
	ctx := context.Background()

	updated, err := svc.UpdateShopkeeperPermission(ctx, admin, owner.ID, true)
	require.NoError(t, err)
	require.True(t, updated.CanAddProducts)

	_, err = svc.UpdateShopkeeperPermission(ctx, admin, "cust1", true)
	require.ErrorIs(t, err, service.ErrValidation, "customers have no product permission")
}

func TestDeleteUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.UserService{Repo: r}
	admin := seedAdmin(t, r)
	seedCustomer(t, r, "cust1", "c@example.com")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, admin, "cust1"))
	require.ErrorIs(t, svc.Delete(ctx, admin, "cust1"), service.ErrNotFound)
}

func TestUserAdminSurfaceRequiresAdmin(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.UserService{Repo: r}
	customer := seedCustomer(t, r, "cust1", "c@example.com")
	ctx := context.Background()

	_, err := svc.List(ctx, customer)
	require.ErrorIs(t, err, service.ErrPermission)
	_, err = svc.UpdateRole(ctx, customer, "cust1", models.RoleAdmin)
	require.ErrorIs(t, err, service.ErrPermission)
	require.ErrorIs(t, svc.Delete(ctx, customer, "cust1"), service.ErrPermission)
}
