package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webwallet-api/internal/model"
)

func TestCreateAccountRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		req         *model.CreateAccountRequest
		shouldError bool
		errorMsg    string
	}{
		{
			name: "valid request",
			req: &model.CreateAccountRequest{
				Balance:      "100,50",
				InterestRate: "1,25",
				Comment:      "Savings",
			},
			shouldError: false,
		},
		{
			name: "valid request with zero balance",
			req: &model.CreateAccountRequest{
				Balance:      "0",
				InterestRate: "0",
			},
			shouldError: false,
		},
		{
			name: "valid request without comment",
			req: &model.CreateAccountRequest{
				Balance:      "100",
				InterestRate: "2,5",
			},
			shouldError: false,
		},
		{
			name: "missing balance",
			req: &model.CreateAccountRequest{
				InterestRate: "1,25",
			},
			shouldError: true,
			errorMsg:    "balance must be a non-negative amount",
		},
		{
			name: "negative balance",
			req: &model.CreateAccountRequest{
				Balance:      "-50,00",
				InterestRate: "1,25",
			},
			shouldError: true,
			errorMsg:    "balance must be a non-negative amount",
		},
		{
			name: "balance with three decimals",
			req: &model.CreateAccountRequest{
				Balance:      "100,001",
				InterestRate: "1,25",
			},
			shouldError: true,
			errorMsg:    "balance must be a non-negative amount",
		},
		{
			name: "balance with dot separator",
			req: &model.CreateAccountRequest{
				Balance:      "100.50",
				InterestRate: "1,25",
			},
			shouldError: true,
			errorMsg:    "balance must be a non-negative amount",
		},
		{
			name: "malformed interest rate",
			req: &model.CreateAccountRequest{
				Balance:      "100,50",
				InterestRate: "abc",
			},
			shouldError: true,
			errorMsg:    "interest rate must be a non-negative amount",
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

func TestUpdateAccountRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		req         *model.UpdateAccountRequest
		shouldError bool
	}{
		{
			name: "valid update",
			req: &model.UpdateAccountRequest{
				InterestRate: "2,75",
				Comment:      "Renamed",
			},
			shouldError: false,
		},
		{
			name: "empty comment is allowed",
			req: &model.UpdateAccountRequest{
				InterestRate: "0",
			},
			shouldError: false,
		},
		{
			name: "missing interest rate",
			req: &model.UpdateAccountRequest{
				Comment: "Renamed",
			},
			shouldError: true,
		},
		{
			name: "negative interest rate",
			req: &model.UpdateAccountRequest{
				InterestRate: "-1,00",
			},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.shouldError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
