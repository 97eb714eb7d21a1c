package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"webwallet-api/internal/money"
)

// Account represents a bank account owned by a single user.
type Account struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OwnerID      uuid.UUID       `json:"owner_id" db:"owner_id"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	Comment      string          `json:"comment" db:"comment"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// CreateAccountRequest represents the request to create a new account.
// Amount fields arrive as comma-decimal strings and are parsed at the
// boundary; the owner comes from the identity header, never the body.
type CreateAccountRequest struct {
	Balance      string `json:"balance"`
	InterestRate string `json:"interest_rate"`
	Comment      string `json:"comment"`
}

// UpdateAccountRequest represents an edit of an existing account. Only the
// comment and interest rate are editable; the balance changes exclusively
// through postings.
type UpdateAccountRequest struct {
	InterestRate string `json:"interest_rate"`
	Comment      string `json:"comment"`
}

// AccountResponse is the wire shape for a single account.
type AccountResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Balance      string    `json:"balance"`
	InterestRate string    `json:"interest_rate"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAccountResponse converts a stored account into its wire shape.
func NewAccountResponse(a *Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Balance:      money.Format(a.Balance),
		InterestRate: money.Format(a.InterestRate),
		Comment:      a.Comment,
		CreatedAt:    a.CreatedAt,
	}
}

// Validate validates the create account request.
func (r *CreateAccountRequest) Validate() error {
	if _, err := money.Parse(r.Balance); err != nil {
		return &ValidationError{
			Field:   "balance",
			Message: "balance must be a non-negative amount with up to two decimals, e.g. 4,75",
		}
	}
	if _, err := money.Parse(r.InterestRate); err != nil {
		return &ValidationError{
			Field:   "interest_rate",
			Message: "interest rate must be a non-negative amount with up to two decimals, e.g. 4,75",
		}
	}
	return nil
}

// Validate validates the update account request.
func (r *UpdateAccountRequest) Validate() error {
	if _, err := money.Parse(r.InterestRate); err != nil {
		return &ValidationError{
			Field:   "interest_rate",
			Message: "interest rate must be a non-negative amount with up to two decimals, e.g. 4,75",
		}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
