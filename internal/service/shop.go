package service

import (
	"context"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

// ShopService runs the onboarding workflow: a shop is created Pending,
// and an admin either approves it (terminal) or rejects it, which removes
// the shop and its owner. There is no way back from Approved.
type ShopService struct {
	Repo *repo.GormRepo
}

// Approve marks the shop approved and grants the owner CanAddProducts,
// atomically. Calling it again on an approved shop is a no-op with the
// same result.
func (s *ShopService) Approve(ctx context.Context, actor *models.User, shopID string) (*models.Shop, error) {
	if err := requirePermission(actor, ActApproveShops, Resource{}); err != nil {
		return nil, err
	}

	var shop *models.Shop
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		shop, err = tx.GetShop(ctx, shopID)
		if err != nil {
			return notFound(err, "shop")
		}

		shop.Approved = true
		if err := tx.SaveShop(ctx, shop); err != nil {
			return err
		}

		owner, err := tx.GetUser(ctx, shop.OwnerID)
		if err != nil {
			return notFound(err, "shop owner")
		}
		owner.CanAddProducts = true
		return tx.SaveUser(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// Reject deletes the shop together with its owner account and any products
// it already listed. No orphaned shopkeeper may remain, so the three
// deletes commit or roll back as one.
func (s *ShopService) Reject(ctx context.Context, actor *models.User, shopID string) error {
	if err := requirePermission(actor, ActApproveShops, Resource{}); err != nil {
		return err
	}

	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		shop, err := tx.GetShop(ctx, shopID)
		if err != nil {
			return notFound(err, "shop")
		}
		if err := tx.DeleteShopProducts(ctx, shop.ID); err != nil {
			return err
		}
		if err := tx.DeleteShop(ctx, shop.ID); err != nil {
			return notFound(err, "shop")
		}
		return notFound(tx.DeleteUser(ctx, shop.OwnerID), "shop owner")
	})
}

func (s *ShopService) Get(ctx context.Context, shopID string) (*models.Shop, error) {
	shop, err := s.Repo.GetShop(ctx, shopID)
	if err != nil {
		return nil, notFound(err, "shop")
	}
	return shop, nil
}

func (s *ShopService) List(ctx context.Context, actor *models.User) ([]models.Shop, error) {
	if err := requirePermission(actor, ActApproveShops, Resource{}); err != nil {
		return nil, err
	}
	return s.Repo.ListShops(ctx)
}
