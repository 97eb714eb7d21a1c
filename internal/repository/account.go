package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"webwallet-api/internal/model"
)

// AccountRepository handles account-related database operations
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account for the given owner
func (r *AccountRepository) Create(ctx context.Context, ownerID uuid.UUID, balance, interestRate decimal.Decimal, comment string) (*model.Account, error) {
	query := `
		INSERT INTO accounts (owner_id, balance, interest_rate, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, owner_id, balance, interest_rate, comment, created_at
	`

	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, ownerID, balance, interestRate, comment).Scan(
		&account.ID,
		&account.OwnerID,
		&account.Balance,
		&account.InterestRate,
		&account.Comment,
		&account.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, owner_id, balance, interest_rate, comment, created_at
		FROM accounts
		WHERE id = $1
	`

	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.OwnerID,
		&account.Balance,
		&account.InterestRate,
		&account.Comment,
		&account.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// ListByOwner retrieves all accounts owned by the given user, ordered by
// comment ascending
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Account, error) {
	query := `
		SELECT id, owner_id, balance, interest_rate, comment, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY comment ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		account := &model.Account{}
		err := rows.Scan(
			&account.ID,
			&account.OwnerID,
			&account.Balance,
			&account.InterestRate,
			&account.Comment,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetBalanceForUpdate retrieves an account's balance with row-level locking.
// This is used during postings to prevent concurrent modifications.
func (r *AccountRepository) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx, query, id).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get account balance for update: %w", err)
	}

	return balance, nil
}

// UpdateBalance updates an account's balance within a transaction
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $1
		WHERE id = $2
	`

	result, err := tx.ExecContext(ctx, query, newBalance, id)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// UpdateDetails mutates the comment and interest rate of an existing
// account. The balance, owner and creation time are never touched here.
func (r *AccountRepository) UpdateDetails(ctx context.Context, id uuid.UUID, comment string, interestRate decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET comment = $1, interest_rate = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, comment, interestRate, id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Delete removes an account. Its transactions are removed by the cascade on
// the foreign key.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// Exists checks if an account exists
func (r *AccountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM accounts WHERE id = $1 LIMIT 1`

	var exists int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return true, nil
}
