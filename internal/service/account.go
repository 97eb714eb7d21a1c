package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"webwallet-api/internal/model"
	"webwallet-api/internal/money"
	"webwallet-api/internal/repository"
)

// AccountService handles account business logic
type AccountService struct {
	accountRepo *repository.AccountRepository
	db          *sql.DB
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo *repository.AccountRepository, db *sql.DB) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		db:          db,
	}
}

// ListAccounts retrieves all accounts owned by the acting user, ordered by
// comment ascending.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*model.AccountResponse, error) {
	accounts, err := s.accountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, model.NewAccountResponse(account))
	}

	return responses, nil
}

// CreateAccount creates a new account owned by the acting user
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, req *model.CreateAccountRequest) (*model.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		if validationErr, ok := err.(*model.ValidationError); ok {
			return nil, &ServiceError{
				Code:    model.ErrCodeValidation,
				Message: validationErr.Message,
			}
		}
		return nil, err
	}

	// Validate guarantees both parse
	balance, _ := money.Parse(req.Balance)
	interestRate, _ := money.Parse(req.InterestRate)

	account, err := s.accountRepo.Create(ctx, ownerID, balance, interestRate, req.Comment)
	if err != nil {
		return nil, err
	}

	return model.NewAccountResponse(account), nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*model.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Account not found",
			}
		}
		return nil, err
	}

	return model.NewAccountResponse(account), nil
}

// UpdateAccount mutates the comment and interest rate of an existing
// account. Balance, owner and creation time are untouched.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		if validationErr, ok := err.(*model.ValidationError); ok {
			return nil, &ServiceError{
				Code:    model.ErrCodeValidation,
				Message: validationErr.Message,
			}
		}
		return nil, err
	}

	interestRate, _ := money.Parse(req.InterestRate)

	err := s.accountRepo.UpdateDetails(ctx, id, req.Comment, interestRate)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Account not found",
			}
		}
		return nil, err
	}

	return s.GetAccount(ctx, id)
}

// DeleteAccount removes an account and, through the cascade, all of its
// transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := s.accountRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Account not found",
			}
		}
		return err
	}

	return nil
}

// ServiceError represents a service-level error
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
