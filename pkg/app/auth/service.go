package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/password"
	"github.com/sirupsen/logrus"
)

const TokenTypeBearer = "bearer"

var ErrSignUpsDisabled = errors.New("sign ups are disabled")

type Session struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *user.User `json:"user"`
}

type Config struct {
	AllowSignUps bool
	// AdminEmails are promoted to super admin when they register.
	AdminEmails []string
}

type Service interface {
	Register(ctx context.Context, email, plain string) (*Session, error)
	Login(ctx context.Context, email, plain string) (*Session, error)
	// EnsureSuperAdmin creates the account if needed and grants super admin.
	EnsureSuperAdmin(ctx context.Context, email, plain string) (*user.User, bool, error)
}

type service struct {
	logger *logrus.Logger
	users  user.Repository
	hasher password.Hasher
	tokens jwt.Manager
	cfg    Config
	admins map[string]struct{}
}

func NewService(
	logger *logrus.Logger,
	users user.Repository,
	hasher password.Hasher,
	tokens jwt.Manager,
	cfg Config,
) Service {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = user.NormalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &service{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
		cfg:    cfg,
		admins: admins,
	}
}

func (s *service) Register(ctx context.Context, email, plain string) (*Session, error) {
	if !s.cfg.AllowSignUps {
		return nil, ErrSignUpsDisabled
	}
	u, err := s.newUser(email, plain)
	if err != nil {
		return nil, err
	}
	if _, ok := s.admins[u.Email]; ok {
		u.IsSuperAdmin = true
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"admin":   u.IsSuperAdmin,
	}).Info("user registered")
	return s.session(u)
}

func (s *service) Login(ctx context.Context, email, plain string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, plain); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *service) EnsureSuperAdmin(ctx context.Context, email, plain string) (*user.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsSuperAdmin {
			if err := s.users.SetSuperAdmin(ctx, existing.ID, true); err != nil {
				return nil, false, fmt.Errorf("failed to promote user: %w", err)
			}
			existing.IsSuperAdmin = true
		}
		return existing, false, nil
	case !errors.Is(err, domainErrors.ErrEntityNotFound):
		return nil, false, err
	}

	u, err := s.newUser(email, plain)
	if err != nil {
		return nil, false, err
	}
	u.IsSuperAdmin = true
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *service) newUser(email, plain string) (*user.User, error) {
	if err := s.hasher.Validate(plain); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return user.New(strings.TrimSpace(email), hash)
}

func (s *service) session(u *user.User) (*Session, error) {
	token, err := s.tokens.CreateToken(u.ID, u.Email, u.IsSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	return &Session{AccessToken: token, TokenType: TokenTypeBearer, User: u}, nil
}
