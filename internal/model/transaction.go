package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"webwallet-api/internal/money"
)

// Transaction represents a single deposit or withdrawal posted against an
// account. Exactly one of Deposit/Withdraw is set; neither can change after
// creation, only the comment is editable.
type Transaction struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	BankAccountID uuid.UUID        `json:"bank_account_id" db:"bank_account_id"`
	Deposit       *decimal.Decimal `json:"deposit" db:"deposit"`
	Withdraw      *decimal.Decimal `json:"withdraw" db:"withdraw"`
	Comment       string           `json:"comment" db:"comment"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// CreateTransactionRequest represents the request to post a deposit or
// withdrawal. Deposition selects the direction; Amount is a comma-decimal
// string parsed at the boundary.
type CreateTransactionRequest struct {
	BankAccountID uuid.UUID `json:"bank_account_id"`
	Comment       string    `json:"comment"`
	Deposition    bool      `json:"deposition"`
	Amount        string    `json:"amount"`
}

// UpdateTransactionRequest represents a comment edit on an existing
// transaction.
type UpdateTransactionRequest struct {
	Comment string `json:"comment"`
}

// TransactionResponse is the wire shape for a single transaction. The unset
// side of deposit/withdraw renders as an empty string.
type TransactionResponse struct {
	ID            uuid.UUID `json:"id"`
	BankAccountID uuid.UUID `json:"bank_account_id"`
	Deposit       string    `json:"deposit"`
	Withdraw      string    `json:"withdraw"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewTransactionResponse converts a stored transaction into its wire shape.
func NewTransactionResponse(t *Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:            t.ID,
		BankAccountID: t.BankAccountID,
		Comment:       t.Comment,
		CreatedAt:     t.CreatedAt,
	}
	if t.Deposit != nil {
		resp.Deposit = money.Format(*t.Deposit)
	}
	if t.Withdraw != nil {
		resp.Withdraw = money.Format(*t.Withdraw)
	}
	return resp
}

// Validate validates the create transaction request.
func (r *CreateTransactionRequest) Validate() error {
	if r.BankAccountID == uuid.Nil {
		return &ValidationError{
			Field:   "bank_account_id",
			Message: "bank account id is required",
		}
	}
	if _, err := money.Parse(r.Amount); err != nil {
		return &ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative amount with up to two decimals, e.g. 4,75",
		}
	}
	return nil
}
