package request

import (
	"errors"
	"strings"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmountValue = errors.New("invalid amount value")
	ErrInvalidMethodValue = errors.New("invalid method value")
)

// PaymentCreateRequest is the payload for the create-payment route.
//
// `amount` travels as a decimal string ("100.00"); JSON numbers go through
// float64 and would break the fixed-point guarantee.
type PaymentCreateRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Method      string `json:"method" binding:"required"`
	Description string `json:"description"`
}

func (r PaymentCreateRequest) ToInput() (usecase.CreatePaymentInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return usecase.CreatePaymentInput{}, ErrInvalidAmountValue
	}

	method := entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.Method)))
	switch method {
	case entities.MethodCard, entities.MethodWallet, entities.MethodInstantTransfer:
	default:
		return usecase.CreatePaymentInput{}, ErrInvalidMethodValue
	}

	return usecase.CreatePaymentInput{
		Amount:      amount,
		Currency:    r.Currency,
		Method:      method,
		Description: r.Description,
	}, nil
}
