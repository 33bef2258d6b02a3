package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/google/uuid"
)

type Outcome struct {
	Verified bool   `json:"verified"`
	Method   string `json:"method,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Service verifies one of the caller's domains and records the result.
type Service interface {
	VerifyDomain(ctx context.Context, domainID, userID uuid.UUID) (*Outcome, error)
}

type service struct {
	repo     site.Repository
	verifier Verifier
	now      func() time.Time
}

func NewService(repo site.Repository, verifier Verifier) Service {
	return &service{repo: repo, verifier: verifier, now: time.Now}
}

func (s *service) VerifyDomain(ctx context.Context, domainID, userID uuid.UUID) (*Outcome, error) {
	d, err := s.repo.GetOwned(ctx, domainID, userID)
	if err != nil {
		return nil, err
	}
	if d.IsVerified {
		return &Outcome{Verified: true, Message: "Domain already verified"}, nil
	}

	ok, method := s.verifier.Verify(ctx, d)
	if !ok {
		return &Outcome{
			Verified: false,
			Message:  "Verification failed. Please check DNS TXT record or file.",
		}, nil
	}
	if err := s.repo.MarkVerified(ctx, d.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to mark domain verified: %w", err)
	}
	return &Outcome{Verified: true, Method: method}, nil
}
