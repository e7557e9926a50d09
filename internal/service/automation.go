package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/maksline/marketfront/internal/events"
	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

// AutomationService is the rule registry: admin-scoped CRUD over the
// declarative trigger/action rules the Engine evaluates.
type AutomationService struct {
	Repo *repo.GormRepo
}

func (s *AutomationService) List(ctx context.Context, actor *models.User) ([]models.AutomationRule, error) {
	if err := requirePermission(actor, ActManageAutomations, Resource{}); err != nil {
		return nil, err
	}
	return s.Repo.ListRules(ctx)
}

func (s *AutomationService) Add(ctx context.Context, actor *models.User, rule models.AutomationRule) (*models.AutomationRule, error) {
	if err := requirePermission(actor, ActManageAutomations, Resource{}); err != nil {
		return nil, err
	}
	if rule.Name == "" {
		return nil, fmt.Errorf("%w: rule name required", ErrValidation)
	}
	switch rule.Trigger {
	case models.TriggerStockBelow:
		if rule.Config.Threshold <= 0 {
			return nil, fmt.Errorf("%w: stock_below needs a positive threshold", ErrValidation)
		}
	case models.TriggerNewApplication:
	default:
		return nil, fmt.Errorf("%w: unknown trigger %q", ErrValidation, rule.Trigger)
	}
	if rule.Action != models.ActionEmailAdmin {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, rule.Action)
	}

	rule.ID = uuid.NewString()
	if err := s.Repo.CreateRule(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *AutomationService) Delete(ctx context.Context, actor *models.User, ruleID string) error {
	if err := requirePermission(actor, ActManageAutomations, Resource{}); err != nil {
		return err
	}
	return notFound(s.Repo.DeleteRule(ctx, ruleID), "automation rule")
}

// Notifier receives rule actions. email_admin stays a hook: the default
// implementation logs intent, the kafka one hands the event to whatever
// consumes automation_events.
type Notifier interface {
	NotifyAdmin(ctx context.Context, subject, detail string) error
}

type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) NotifyAdmin(_ context.Context, subject, detail string) error {
	n.Logger.Info("email admin", "subject", subject, "detail", detail)
	return nil
}

type KafkaNotifier struct {
	Producer *events.Producer
}

func (n *KafkaNotifier) NotifyAdmin(ctx context.Context, subject, detail string) error {
	return n.Producer.PublishEvent(ctx, events.TopicAutomationEvents, subject, map[string]interface{}{
		"type":    "email_admin",
		"subject": subject,
		"detail":  detail,
	})
}

// Engine evaluates rules against store mutations. A nil *Engine is inert,
// so services fire hooks unconditionally.
type Engine struct {
	Repo      *repo.GormRepo
	Notifiers []Notifier
}

// StockChanged fires stock_below rules edge-triggered: only on the
// mutation that crosses the threshold downward, never while the stock
// merely stays below it.
func (e *Engine) StockChanged(ctx context.Context, product *models.Product, oldStock, newStock int) {
	if e == nil {
		return
	}
	rules, err := e.Repo.ListRulesByTrigger(ctx, models.TriggerStockBelow)
	if err != nil {
		logging.FromContext(ctx).Error("load stock_below rules", "error", err)
		return
	}
	for _, rule := range rules {
		th := rule.Config.Threshold
		if newStock < th && oldStock >= th {
			e.dispatch(ctx, rule,
				fmt.Sprintf("stock below %d: %s", th, product.Name),
				fmt.Sprintf("product %s dropped from %d to %d", product.ID, oldStock, newStock),
			)
		}
	}
}

// NewApplication fires new_application rules once per shopkeeper signup.
func (e *Engine) NewApplication(ctx context.Context, shop *models.Shop) {
	if e == nil {
		return
	}
	rules, err := e.Repo.ListRulesByTrigger(ctx, models.TriggerNewApplication)
	if err != nil {
		logging.FromContext(ctx).Error("load new_application rules", "error", err)
		return
	}
	for _, rule := range rules {
		e.dispatch(ctx, rule,
			fmt.Sprintf("new shop application: %s", shop.Name),
			fmt.Sprintf("shop %s is awaiting approval", shop.ID),
		)
	}
}

func (e *Engine) dispatch(ctx context.Context, rule models.AutomationRule, subject, detail string) {
	for _, n := range e.Notifiers {
		if err := n.NotifyAdmin(ctx, subject, detail); err != nil {
			logging.FromContext(ctx).Error("automation notify", "rule", rule.ID, "error", err)
		}
	}
}
