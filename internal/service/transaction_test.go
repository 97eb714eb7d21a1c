package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webwallet-api/internal/model"
	"webwallet-api/internal/money"
	"webwallet-api/internal/repository"
)

func TestCreateTransactionRequest_Validate(t *testing.T) {
	accountID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name        string
		req         *model.CreateTransactionRequest
		shouldError bool
		errorMsg    string
	}{
		{
			name: "valid deposit",
			req: &model.CreateTransactionRequest{
				BankAccountID: accountID,
				Deposition:    true,
				Amount:        "50,00",
			},
			shouldError: false,
		},
		{
			name: "valid withdrawal",
			req: &model.CreateTransactionRequest{
				BankAccountID: accountID,
				Deposition:    false,
				Amount:        "25,50",
				Comment:       "Groceries",
			},
			shouldError: false,
		},
		{
			name: "missing account id",
			req: &model.CreateTransactionRequest{
				Deposition: true,
				Amount:     "50,00",
			},
			shouldError: true,
			errorMsg:    "bank account id is required",
		},
		{
			name: "missing amount",
			req: &model.CreateTransactionRequest{
				BankAccountID: accountID,
				Deposition:    true,
			},
			shouldError: true,
			errorMsg:    "amount must be a non-negative amount",
		},
		{
			name: "amount with dot separator",
			req: &model.CreateTransactionRequest{
				BankAccountID: accountID,
				Deposition:    true,
				Amount:        "50.00",
			},
			shouldError: true,
			errorMsg:    "amount must be a non-negative amount",
		},
		{
			name: "negative amount",
			req: &model.CreateTransactionRequest{
				BankAccountID: accountID,
				Deposition:    false,
				Amount:        "-10,00",
			},
			shouldError: true,
			errorMsg:    "amount must be a non-negative amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.shouldError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyPosting(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		amount     string
		deposition bool
		want       string
		wantErr    error
	}{
		{
			name:       "deposit increases balance",
			balance:    "100,00",
			amount:     "50,00",
			deposition: true,
			want:       "150,00",
		},
		{
			name:       "withdrawal decreases balance",
			balance:    "100,00",
			amount:     "60,00",
			deposition: false,
			want:       "40,00",
		},
		{
			name:       "withdrawal of exact balance is legal",
			balance:    "100,00",
			amount:     "100,00",
			deposition: false,
			want:       "0,00",
		},
		{
			name:       "withdrawal one cent over balance is rejected",
			balance:    "100,00",
			amount:     "100,01",
			deposition: false,
			wantErr:    repository.ErrInsufficientFunds,
		},
		{
			name:       "withdrawal from empty account is rejected",
			balance:    "0",
			amount:     "0,01",
			deposition: false,
			wantErr:    repository.ErrInsufficientFunds,
		},
		{
			name:       "zero withdrawal keeps balance",
			balance:    "100,00",
			amount:     "0",
			deposition: false,
			want:       "100,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := money.Parse(tt.balance)
			require.NoError(t, err)
			amount, err := money.Parse(tt.amount)
			require.NoError(t, err)

			got, err := applyPosting(balance, amount, tt.deposition)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}

func TestNewTransactionResponse_SingleSidePopulated(t *testing.T) {
	amount := decimal.RequireFromString("50")

	deposit := &model.Transaction{
		ID:            uuid.New(),
		BankAccountID: uuid.New(),
		Deposit:       &amount,
	}
	resp := model.NewTransactionResponse(deposit)
	assert.Equal(t, "50,00", resp.Deposit)
	assert.Equal(t, "", resp.Withdraw)

	withdrawal := &model.Transaction{
		ID:            uuid.New(),
		BankAccountID: uuid.New(),
		Withdraw:      &amount,
	}
	resp = model.NewTransactionResponse(withdrawal)
	assert.Equal(t, "", resp.Deposit)
	assert.Equal(t, "50,00", resp.Withdraw)
}

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	deadlock := &pq.Error{Code: "40P01"}
	other := &pq.Error{Code: "23505"}

	assert.True(t, isSerializationFailure(serialization))
	assert.True(t, isSerializationFailure(deadlock))
	assert.True(t, isSerializationFailure(errors.Join(errors.New("wrapped"), serialization)))
	assert.False(t, isSerializationFailure(other))
	assert.False(t, isSerializationFailure(errors.New("plain")))
	assert.False(t, isSerializationFailure(nil))
}
