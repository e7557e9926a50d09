package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/models"
)

func (r *GormRepo) CreateRule(ctx context.Context, rule *models.AutomationRule) error {
	return r.DB.WithContext(ctx).Create(rule).Error
}

func (r *GormRepo) ListRules(ctx context.Context) ([]models.AutomationRule, error) {
	var rules []models.AutomationRule
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormRepo) ListRulesByTrigger(ctx context.Context, trigger models.RuleTrigger) ([]models.AutomationRule, error) {
	var rules []models.AutomationRule
	if err := r.DB.WithContext(ctx).
		Where("trigger_type = ?", trigger).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormRepo) DeleteRule(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.AutomationRule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
