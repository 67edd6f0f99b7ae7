package entity

import (
	"errors"
	"strings"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var ErrUnknownDiscountType = errors.New("unknown discount type")

func ParseDiscountType(s string) (DiscountType, error) {
	switch t := DiscountType(strings.ToLower(strings.TrimSpace(s))); t {
	case DiscountPercentage, DiscountFixed:
		return t, nil
	}
	return "", ErrUnknownDiscountType
}
