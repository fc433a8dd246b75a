package domain

import "errors"

var (
	// ErrEmptySymbol is returned when a strategy is created without a symbol.
	ErrEmptySymbol = errors.New("domain: symbol must not be empty")

	// ErrCashAtRiskRange is returned when cash_at_risk falls outside (0, 1].
	ErrCashAtRiskRange = errors.New("domain: cash_at_risk must be in (0, 1]")

	// ErrNonPositiveQuantity is returned by the order builder for qty <= 0.
	ErrNonPositiveQuantity = errors.New("domain: order quantity must be positive")

	// ErrNonPositivePrice is returned by the order builder for a reference
	// price <= 0.
	ErrNonPositivePrice = errors.New("domain: reference price must be positive")
)
