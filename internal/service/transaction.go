package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"webwallet-api/internal/model"
	"webwallet-api/internal/money"
	"webwallet-api/internal/repository"
)

// postMaxAttempts bounds the automatic retry of a posting whose
// serializable transaction was aborted by a concurrent posting.
const postMaxAttempts = 3

// TransactionService handles transaction business logic
type TransactionService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	db              *sql.DB
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	db *sql.DB,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		db:              db,
	}
}

// PostTransaction records a deposit or withdrawal against an account and
// applies it to the balance. The transaction row and the balance update
// commit as one unit; a withdrawal that would drive the balance negative
// leaves no trace. Serialization conflicts with concurrent postings on the
// same account are retried a bounded number of times.
func (s *TransactionService) PostTransaction(ctx context.Context, req *model.CreateTransactionRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		if validationErr, ok := err.(*model.ValidationError); ok {
			return nil, &ServiceError{
				Code:    model.ErrCodeValidation,
				Message: validationErr.Message,
			}
		}
		return nil, err
	}

	// Validate guarantees this parses
	amount, _ := money.Parse(req.Amount)

	var lastErr error
	for attempt := 0; attempt < postMaxAttempts; attempt++ {
		transaction, err := s.postOnce(ctx, req, amount)
		if err == nil {
			return model.NewTransactionResponse(transaction), nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, &ServiceError{
		Code:    model.ErrCodeConflict,
		Message: fmt.Sprintf("Posting conflicted with concurrent activity, please retry: %v", lastErr),
	}
}

// postOnce runs one read-check-write cycle under a serializable database
// transaction with the account row locked.
func (s *TransactionService) postOnce(ctx context.Context, req *model.CreateTransactionRequest, amount decimal.Decimal) (*model.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be no-op if tx.Commit() succeeds

	balance, err := s.accountRepo.GetBalanceForUpdate(ctx, tx, req.BankAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Account not found",
			}
		}
		return nil, err
	}

	newBalance, err := applyPosting(balance, amount, req.Deposition)
	if err != nil {
		return nil, &ServiceError{
			Code:    model.ErrCodeInsufficientFunds,
			Message: "Balance may not become negative",
		}
	}

	var deposit, withdraw *decimal.Decimal
	if req.Deposition {
		deposit = &amount
	} else {
		withdraw = &amount
	}

	transaction, err := s.transactionRepo.Create(ctx, tx, req.BankAccountID, deposit, withdraw, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateBalance(ctx, tx, req.BankAccountID, newBalance); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// applyPosting computes the balance after a posting. The check uses the
// post-transaction balance: withdrawing the exact balance is legal, only a
// negative result is rejected.
func applyPosting(balance, amount decimal.Decimal, deposition bool) (decimal.Decimal, error) {
	if deposition {
		return balance.Add(amount), nil
	}

	newBalance := balance.Sub(amount)
	if newBalance.IsNegative() {
		return decimal.Zero, repository.ErrInsufficientFunds
	}

	return newBalance, nil
}

// isSerializationFailure reports whether the error is a Postgres
// serialization or deadlock abort, which is safe to retry from the top of
// the read-check-write cycle.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*model.TransactionResponse, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Transaction not found",
			}
		}
		return nil, err
	}

	return model.NewTransactionResponse(transaction), nil
}

// ListAccountTransactions retrieves all transactions for an account in
// insertion order.
func (s *TransactionService) ListAccountTransactions(ctx context.Context, accountID uuid.UUID) ([]*model.TransactionResponse, error) {
	exists, err := s.accountRepo.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &ServiceError{
			Code:    model.ErrCodeNotFound,
			Message: "Account not found",
		}
	}

	transactions, err := s.transactionRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, model.NewTransactionResponse(transaction))
	}

	return responses, nil
}

// UpdateTransactionComment mutates the comment of an existing transaction.
// Amounts and the account reference are immutable once posted.
func (s *TransactionService) UpdateTransactionComment(ctx context.Context, id uuid.UUID, req *model.UpdateTransactionRequest) (*model.TransactionResponse, error) {
	err := s.transactionRepo.UpdateComment(ctx, id, req.Comment)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, &ServiceError{
				Code:    model.ErrCodeNotFound,
				Message: "Transaction not found",
			}
		}
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}
