package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carebridge/internal/auth/models"
	"carebridge/internal/auth/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/email"
	"carebridge/pkg/platform/sentinel"
	"carebridge/pkg/requestcontext"
)

// Service orchestrates account registration and login.
type Service struct {
	accounts store.AccountStore
	tokens   TokenIssuer
	events   notify.Publisher
	logger   *slog.Logger
}

// TokenIssuer abstracts the JWT service so tests can stub token generation.
type TokenIssuer interface {
	GenerateAccessToken(accountID domain.AccountID, role domain.Role) (string, error)
}

func New(accounts store.AccountStore, tokens TokenIssuer, events notify.Publisher, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, events: events, logger: logger}
}

// Register creates an account. Donors and careleavers self-register; orphanage
// and admin accounts require an already-authenticated admin, which the handler
// enforces before calling here.
func (s *Service) Register(ctx context.Context, name, emailAddr, password string, role domain.Role) (*models.Account, error) {
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}

	// Fall back to a name derived from the email local part so donor
	// records always have something presentable.
	if strings.TrimSpace(name) == "" {
		first, last := email.DeriveNameFromEmail(emailAddr)
		name = first + " " + last
	}

	account, err := models.NewAccount(domain.AccountID(uuid.New()), name, emailAddr, role, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	account.PasswordHash = string(hash)

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	return account, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, *models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	tokenString, err := s.tokens.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	// Login events are best-effort observability, never a login blocker.
	if s.events != nil {
		evt := notify.Event{
			Kind: notify.KindLogin,
			Payload: map[string]any{
				"account_id": account.ID.String(),
				"role":       account.Role.String(),
				"device":     requestcontext.Device(ctx),
			},
		}
		if err := s.events.Publish(ctx, evt); err != nil {
			s.logger.WarnContext(ctx, "login event publish failed", "error", err)
		}
	}

	return tokenString, account, nil
}

// GetAccount returns one account by ID.
func (s *Service) GetAccount(ctx context.Context, id domain.AccountID) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}
	return account, nil
}
