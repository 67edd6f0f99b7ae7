package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"size:20;uniqueIndex;not null" json:"orderNumber"`

	// nil for guest orders
	UserID *uint `gorm:"index" json:"userId,omitempty"`
	User   *User `json:"-"`

	GuestName  string `gorm:"size:100" json:"guestName,omitempty"`
	GuestPhone string `gorm:"size:15" json:"guestPhone,omitempty"`
	GuestEmail string `gorm:"size:120" json:"guestEmail,omitempty"`

	CustomerName    string `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone   string `gorm:"size:15;not null" json:"customerPhone"`
	CustomerAddress string `gorm:"type:text;not null" json:"customerAddress"`

	// total = subtotal + deliveryCharges - discount
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryCharges decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"deliveryCharges"`
	Discount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending" json:"paymentStatus"`
	CouponCode    *string       `gorm:"size:20" json:"couponCode,omitempty"`

	Status       OrderStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	ConfirmedAt  *time.Time  `json:"confirmedAt,omitempty"`
	DeliveryTime *time.Time  `json:"deliveryTime,omitempty"`

	DeliveryPersonID *uint  `gorm:"index" json:"deliveryPersonId,omitempty"`
	DeliveryPerson   *User  `gorm:"foreignKey:DeliveryPersonID" json:"-"`
	DeliveryNotes    string `gorm:"type:text" json:"deliveryNotes,omitempty"`

	// set once loyalty points for this order have been credited
	PointsCredited bool `gorm:"not null;default:false" json:"-"`

	// preload only on detail
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`
}

func (o *Order) IsGuest() bool { return o.UserID == nil }

func (o *Order) OwnedBy(userID uint) bool {
	return o.UserID != nil && *o.UserID == userID
}

func (o *Order) AssignedTo(userID uint) bool {
	return o.DeliveryPersonID != nil && *o.DeliveryPersonID == userID
}

func (o *Order) ItemsCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
