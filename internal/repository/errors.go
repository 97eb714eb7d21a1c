package repository

import "errors"

// Repository errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrConcurrentUpdate    = errors.New("concurrent update detected")
)
