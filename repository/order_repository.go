package repository

import (
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the header; items are inserted separately.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Items", "User", "DeliveryPerson").Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Omit("MenuItem").Create(oi).Error
}

func (r *OrderRepository) OrderNumberExists(tx *gorm.DB, number string) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Order{}).Where("order_number = ?", number).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *OrderRepository) GetByID(db *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := db.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByNumber(number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").Where("order_number = ?", number).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /my/orders → newest first
func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GET /admin/orders → optional status filter
func (r *OrderRepository) ListAll(status entity.OrderStatus, limit int) ([]entity.Order, error) {
	q := r.DB.Preload("Items")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.Order
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// ---------------- Payment ----------------

// ConfirmPayment is a no-op (false) when payment was already confirmed.
func (r *OrderRepository) ConfirmPayment(tx *gorm.DB, id uint, at time.Time) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status <> ?", id, entity.PaymentConfirmed).
		Updates(map[string]any{
			"payment_status": entity.PaymentConfirmed,
			"confirmed_at":   at,
		})
	return res.RowsAffected == 1, res.Error
}

// ---------------- Status transitions (guarded) ----------------

// UpdateStatusFromTo moves the order only if it is currently in one of from.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from []entity.OrderStatus, to entity.OrderStatus) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetStatus is the admin override: no guard on the current status.
func (r *OrderRepository) SetStatus(tx *gorm.DB, orderID uint, to entity.OrderStatus, deliveredAt *time.Time) (bool, error) {
	fields := map[string]any{"status": to}
	if deliveredAt != nil {
		fields["delivery_time"] = *deliveredAt
	}
	res := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields)
	return res.RowsAffected == 1, res.Error
}

// Claim assigns an unassigned, ready order to the delivery person.
// A confirmed order moves to preparing; a preparing one keeps its status.
func (r *OrderRepository) Claim(tx *gorm.DB, orderID, deliveryPersonID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND delivery_person_id IS NULL AND status IN ?", orderID, entity.ClaimableStatuses).
		Updates(map[string]any{
			"delivery_person_id": deliveryPersonID,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				entity.OrderConfirmed, entity.OrderPreparing),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderRepository) Pickup(tx *gorm.DB, orderID, deliveryPersonID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND delivery_person_id = ? AND status IN ?", orderID, deliveryPersonID, entity.ClaimableStatuses).
		Update("status", entity.OrderOutForDelivery)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Complete marks delivery and, for cash orders, the payment collected at the door.
func (r *OrderRepository) Complete(tx *gorm.DB, orderID, deliveryPersonID uint, at time.Time) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND delivery_person_id = ? AND status = ?", orderID, deliveryPersonID, entity.OrderOutForDelivery).
		Updates(map[string]any{
			"status":         entity.OrderDelivered,
			"delivery_time":  at,
			"payment_status": entity.PaymentConfirmed,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkPointsCredited succeeds for exactly one caller per order.
func (r *OrderRepository) MarkPointsCredited(tx *gorm.DB, orderID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND points_credited = ?", orderID, false).
		Update("points_credited", true)
	return res.RowsAffected == 1, res.Error
}

// ---------------- Delivery queue ----------------

func (r *OrderRepository) AssignedTo(deliveryPersonID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("delivery_person_id = ?", deliveryPersonID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Available orders are ready and unassigned, oldest first.
func (r *OrderRepository) Available() ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("status IN ? AND delivery_person_id IS NULL", entity.ClaimableStatuses).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) CountDeliveredSince(deliveryPersonID uint, since time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).
		Where("delivery_person_id = ? AND status = ? AND delivery_time >= ?", deliveryPersonID, entity.OrderDelivered, since).
		Count(&n).Error
	return n, err
}

// ---------------- Stats ----------------

type OrderStats struct {
	TotalOrders   int64           `json:"totalOrders"`
	PendingOrders int64           `json:"pendingOrders"`
	TodayOrders   int64           `json:"todayOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// Stats counts revenue from orders whose payment is confirmed.
func (r *OrderRepository) Stats(dayStart time.Time) (*OrderStats, error) {
	var s OrderStats
	m := func() *gorm.DB { return r.DB.Model(&entity.Order{}) }

	if err := m().Count(&s.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := m().Where("status = ?", entity.OrderPending).Count(&s.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := m().Where("created_at >= ?", dayStart).Count(&s.TodayOrders).Error; err != nil {
		return nil, err
	}
	var revenue decimal.NullDecimal
	if err := m().Select("SUM(total_amount)").
		Where("payment_status = ?", entity.PaymentConfirmed).
		Row().Scan(&revenue); err != nil {
		return nil, err
	}
	s.TotalRevenue = revenue.Decimal
	return &s, nil
}
