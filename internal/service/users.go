package service

import (
	"context"
	"fmt"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

// UserService is the admin surface over accounts.
type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requirePermission(actor, ActManageUsers, Resource{}); err != nil {
		return nil, err
	}
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, actor *models.User, userID string, role models.Role) (*models.User, error) {
	if err := requirePermission(actor, ActManageUsers, Resource{}); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	user.Role = role
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account only. Rejecting a shop is the one flow that
// cascades; plain deletion leaves any shop rows in place.
func (s *UserService) Delete(ctx context.Context, actor *models.User, userID string) error {
	if err := requirePermission(actor, ActManageUsers, Resource{}); err != nil {
		return err
	}
	return notFound(s.Repo.DeleteUser(ctx, userID), "user")
}

func (s *UserService) UpdateShopkeeperPermission(ctx context.Context, actor *models.User, userID string, canAddProducts bool) (*models.User, error) {
	if err := requirePermission(actor, ActManageUsers, Resource{}); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if user.Role != models.RoleShopkeeper {
		return nil, fmt.Errorf("%w: user is not a shopkeeper", ErrValidation)
	}

	user.CanAddProducts = canAddProducts
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
