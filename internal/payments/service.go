package payments

import (
	"context"

	"github.com/google/uuid"

	"clubhub/internal/shared/apperr"
	"clubhub/pkg/logger"
)

const maxTopUpAmount = 100000

type Service interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error)
	TopUp(ctx context.Context, userID uuid.UUID, req *TopUpRequest) (*BalanceResponse, error)
	History(ctx context.Context, userID uuid.UUID) ([]Payment, error)
}

type service struct {
	repo    Repository
	gateway Gateway
	log     *logger.Logger
}

func NewService(repo Repository, gateway Gateway, log *logger.Logger) Service {
	return &service{
		repo:    repo,
		gateway: gateway,
		log:     log,
	}
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get balance", err)
	}
	return &BalanceResponse{Balance: balance}, nil
}

func (s *service) TopUp(ctx context.Context, userID uuid.UUID, req *TopUpRequest) (*BalanceResponse, error) {
	if req.Amount <= 0 {
		return nil, apperr.New(apperr.KindValidation, "amount must be positive")
	}
	if req.Amount > maxTopUpAmount {
		return nil, apperr.PolicyViolation("top-up amount exceeds the limit")
	}

	method := Method(req.PaymentMethod)
	transactionID := ""
	if method != MethodCash {
		var err error
		transactionID, err = s.gateway.Charge(ctx, userID.String(), req.Amount, req.PaymentMethod)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindUpstreamFailure, "payment was declined", err)
		}
	}

	if _, err := s.repo.TopUpAtomic(ctx, userID, req.Amount, method, transactionID); err != nil {
		if err == ErrUserNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to top up balance", err)
	}

	s.log.Info("balance topped up", "user_id", userID.String(), "amount", req.Amount, "method", req.PaymentMethod)

	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to get balance", err)
	}
	return &BalanceResponse{Balance: balance}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list payments", err)
	}
	return payments, nil
}
