package entity

import (
	"errors"
	"strings"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var ErrUnknownOrderStatus = errors.New("unknown order status")

// AllOrderStatuses in lifecycle order, cancelled last.
var AllOrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled,
}

// ClaimableStatuses are the states a delivery person may pick an order up from.
var ClaimableStatuses = []OrderStatus{OrderConfirmed, OrderPreparing}

var orderProgress = map[OrderStatus]int{
	OrderPending:        10,
	OrderConfirmed:      25,
	OrderPreparing:      50,
	OrderOutForDelivery: 75,
	OrderDelivered:      100,
	OrderCancelled:      0,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := orderProgress[st]; !ok {
		return "", ErrUnknownOrderStatus
	}
	return st, nil
}

func (s OrderStatus) Valid() bool {
	_, ok := orderProgress[s]
	return ok
}

// Progress is the percentage shown on the tracking bar.
func (s OrderStatus) Progress() int { return orderProgress[s] }

// Terminal states accept no further transitions except an admin override.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Display renders the status for people, e.g. "Out For Delivery".
func (s OrderStatus) Display() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
