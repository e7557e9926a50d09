package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/service"
)

func TestAddRuleValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.AutomationService{Repo: r}
	admin := seedAdmin(t, r)
	ctx := context.Background()

	_, err := svc.Add(ctx, admin, models.AutomationRule{
		Trigger: models.TriggerStockBelow, Action: models.ActionEmailAdmin,
		Config: models.RuleConfig{Threshold: 5},
	})
	require.ErrorIs(t, err, service.ErrValidation, "name required")

	_, err = svc.Add(ctx, admin, models.AutomationRule{
		Name: "Low Stock", Trigger: models.TriggerStockBelow, Action: models.ActionEmailAdmin,
	})
	require.ErrorIs(t, err, service.ErrValidation, "threshold required")

	_, err = svc.Add(ctx, admin, models.AutomationRule{
		Name: "Weird", Trigger: "on_full_moon", Action: models.ActionEmailAdmin,
	})
	require.ErrorIs(t, err, service.ErrValidation, "unknown trigger")

	_, err = svc.Add(ctx, admin, models.AutomationRule{
		Name: "Weird", Trigger: models.TriggerNewApplication, Action: "page_everyone",
	})
	require.ErrorIs(t, err, service.ErrValidation, "unknown action")

	rule, err := svc.Add(ctx, admin, models.AutomationRule{
		Name: "New Application", Trigger: models.TriggerNewApplication, Action: models.ActionEmailAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, rule.ID)
}

func TestAutomationCRUDRequiresAdmin(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.AutomationService{Repo: r}
	customer := seedCustomer(t, r, "cust1", "c@example.com")
	ctx := context.Background()

	_, err := svc.List(ctx, customer)
	require.ErrorIs(t, err, service.ErrPermission)
	_, err = svc.Add(ctx, customer, models.AutomationRule{Name: "x"})
	require.ErrorIs(t, err, service.ErrPermission)
	err = svc.Delete(ctx, customer, "auto1")
	require.ErrorIs(t, err, service.ErrPermission)
}

func TestDeleteRuleStopsFiring(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.AutomationService{Repo: r}
	admin := seedAdmin(t, r)
	notifier := &captureNotifier{}
	engine := newEngine(r, notifier)
	ctx := context.Background()

	rule, err := svc.Add(ctx, admin, models.AutomationRule{
		Name: "New Application", Trigger: models.TriggerNewApplication, Action: models.ActionEmailAdmin,
	})
	require.NoError(t, err)

	shop := &models.Shop{ID: "shopId9", Name: "Corner Store", OwnerID: "shop9"}
	engine.NewApplication(ctx, shop)
	require.Equal(t, 1, notifier.count())

	require.NoError(t, svc.Delete(ctx, admin, rule.ID))
	engine.NewApplication(ctx, shop)
	require.Equal(t, 1, notifier.count())

	err = svc.Delete(ctx, admin, rule.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestNilEngineIsInert(t *testing.T) {
	var engine *service.Engine
	engine.StockChanged(context.Background(), &models.Product{ID: "prod1"}, 10, 0)
	engine.NewApplication(context.Background(), &models.Shop{ID: "shopId1"})
}
