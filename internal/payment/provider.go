// Package payment abstracts the payment collaborator. The storefront
// trusts the provider's confirmation callback; signature verification is
// deliberately out of scope.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type ChargeStatus string

const (
	ChargeStatusSuccess ChargeStatus = "success"
	ChargeStatusFailed  ChargeStatus = "failed"
)

// ChargeResult is what the provider reported for one charge attempt.
// FailureReason carries the provider's message verbatim when Status is
// failed.
type ChargeResult struct {
	Status        ChargeStatus
	PaymentID     string
	FailureReason string
}

var ErrPaymentDeclined = errors.New("payment declined")

// Provider charges the customer for an order. An error return means the
// charge outcome is unknown (transport failure); a failed ChargeResult
// means the provider answered and declined.
type Provider interface {
	Charge(ctx context.Context, orderID string, amount float64) (*ChargeResult, error)
}

// SimulatedProvider approves a fixed share of charges, standing in for the
// real gateway in development and tests.
type SimulatedProvider struct {
	roll func() int
}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{
		roll: func() int { return rand.Intn(101) }, // 101 because Intn is exclusive of the upper bound
	}
}

// NewAlwaysApproveProvider approves everything. Useful when the charge
// outcome is decided upstream and the backend only records it.
func NewAlwaysApproveProvider() *SimulatedProvider {
	return &SimulatedProvider{roll: func() int { return 0 }}
}

func (p *SimulatedProvider) Charge(_ context.Context, orderID string, amount float64) (*ChargeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid charge amount %.2f for order %s", amount, orderID)
	}

	status, reason := calcStatus(p.roll())
	result := &ChargeResult{
		Status:        status,
		PaymentID:     fmt.Sprintf("TXN-%d", time.Now().UnixNano()),
		FailureReason: reason,
	}
	return result, nil
}

func calcStatus(roll int) (ChargeStatus, string) {
	if roll < 95 {
		return ChargeStatusSuccess, ""
	}
	switch roll - 95 {
	case 1:
		return ChargeStatusFailed, "insufficient funds"
	case 2:
		return ChargeStatusFailed, "card expired"
	case 3:
		return ChargeStatusFailed, "issuer declined"
	case 4:
		return ChargeStatusFailed, "network timeout at issuer"
	default:
		return ChargeStatusFailed, "unknown reason"
	}
}
