package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maksline/marketfront/internal/events"
	"github.com/maksline/marketfront/internal/hash"
	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
)

type AuthService struct {
	Repo       *repo.GormRepo
	Producer   *events.Producer
	Automation *Engine
}

// Login resolves a user by email (case-insensitive) and exact role. The
// password must be present but is not compared against the stored hash;
// flipping to real verification is a single hash.CheckPassword call. Do
// not deploy as-is.
func (s *AuthService) Login(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	user, err := s.Repo.GetUserByEmailAndRole(ctx, email, role)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, emailErr := s.Repo.GetUserByEmail(ctx, email); emailErr == nil {
			return nil, fmt.Errorf("%w: account exists under a different role", ErrRoleMismatch)
		}
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	if user.Role == models.RoleShopkeeper {
		if _, err := s.Repo.GetShop(ctx, user.ShopID); err != nil {
			return nil, notFound(err, "associated shop")
		}
	}

	return user, nil
}

// LoginAsAdmin is the explicit admin override: it hands out the seeded
// admin identity without credentials. Kept deliberately separate from
// Login so the shortcut never leaks into the generic path.
func (s *AuthService) LoginAsAdmin(ctx context.Context) (*models.User, error) {
	admin, err := s.Repo.FirstAdmin(ctx)
	if err != nil {
		return nil, notFound(err, "admin user")
	}
	return admin, nil
}

func (s *AuthService) SignupCustomer(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.publishUserEvent(ctx, "customer_registered", user)
	return user, nil
}

// SignupShopkeeper creates the owner account and its unapproved shop in
// one transaction. The shop starts Pending and the owner cannot add
// products until an admin approves it.
func (s *AuthService) SignupShopkeeper(ctx context.Context, ownerName, shopName, email, password string) (*models.User, *models.Shop, error) {
	if shopName == "" {
		return nil, nil, fmt.Errorf("%w: shop name required", ErrValidation)
	}
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, nil, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Name:           ownerName,
		Email:          email,
		PasswordHash:   hashed,
		Role:           models.RoleShopkeeper,
		ShopID:         uuid.NewString(),
		CanAddProducts: false,
	}
	shop := &models.Shop{
		ID:       user.ShopID,
		Name:     shopName,
		OwnerID:  user.ID,
		Approved: false,
	}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.CreateShop(ctx, shop)
	})
	if err != nil {
		return nil, nil, err
	}

	s.publishUserEvent(ctx, "shopkeeper_registered", user)
	s.Automation.NewApplication(ctx, shop)
	return user, shop, nil
}

// SendPasswordReset never tells the caller whether the email exists; the
// found/not-found split lives only in the logs.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) {
	l := logging.FromContext(ctx).With("op", "password_reset")
	if _, err := s.Repo.GetUserByEmail(ctx, email); err != nil {
		l.Info("reset requested for unknown email")
		return
	}
	l.Info("reset email would be sent", "email", strings.ToLower(email))
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email required", ErrValidation)
	}
	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already in use", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) publishUserEvent(ctx context.Context, kind string, user *models.User) {
	event := map[string]interface{}{
		"type":    kind,
		"user_id": user.ID,
		"role":    user.Role,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, user.ID, event); err != nil {
		logging.FromContext(ctx).Error("publish user event", "error", err)
	}
}
