package entity

import (
	"errors"
	"strings"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
)

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// ParsePaymentMethod defaults to cash when nothing was chosen.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentUPI:
		return m, nil
	}
	return "", ErrUnknownPaymentMethod
}
