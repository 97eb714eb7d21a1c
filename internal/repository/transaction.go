package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"webwallet-api/internal/model"
)

// TransactionRepository handles transaction-related database operations
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction row inside the given database
// transaction. Exactly one of deposit/withdraw is non-nil; the caller is
// responsible for updating the account balance in the same commit.
func (r *TransactionRepository) Create(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, deposit, withdraw *decimal.Decimal, comment string) (*model.Transaction, error) {
	query := `
		INSERT INTO transactions (bank_account_id, deposit, withdraw, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, bank_account_id, deposit, withdraw, comment, created_at
	`

	row := tx.QueryRowContext(ctx, query, accountID, toNullDecimal(deposit), toNullDecimal(withdraw), comment)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	query := `
		SELECT id, bank_account_id, deposit, withdraw, comment, created_at
		FROM transactions
		WHERE id = $1
	`

	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return transaction, nil
}

// ListByAccount retrieves all transactions for a specific account in
// insertion order
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Transaction, error) {
	query := `
		SELECT id, bank_account_id, deposit, withdraw, comment, created_at
		FROM transactions
		WHERE bank_account_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*model.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateComment mutates the comment of an existing transaction. The
// deposit/withdraw amounts and account reference are immutable after
// creation.
func (r *TransactionRepository) UpdateComment(ctx context.Context, id uuid.UUID, comment string) error {
	query := `
		UPDATE transactions
		SET comment = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, comment, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*model.Transaction, error) {
	transaction := &model.Transaction{}
	var deposit, withdraw decimal.NullDecimal

	err := s.Scan(
		&transaction.ID,
		&transaction.BankAccountID,
		&deposit,
		&withdraw,
		&transaction.Comment,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deposit.Valid {
		transaction.Deposit = &deposit.Decimal
	}
	if withdraw.Valid {
		transaction.Withdraw = &withdraw.Decimal
	}

	return transaction, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
