// services/order_transitions.go
package services

import (
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var nonTerminalStatuses = []entity.OrderStatus{
	entity.OrderPending, entity.OrderConfirmed, entity.OrderPreparing, entity.OrderOutForDelivery,
}

// Cancel: a customer may cancel their own order while it is pending;
// an admin may cancel any order that is not finished yet.
// Promotion uses are not given back.
func (s *OrderService) Cancel(actor entity.Actor, number string) (*entity.Order, error) {
	o, err := s.byNumber(number)
	if err != nil {
		return nil, err
	}
	return s.cancel(actor, o)
}

// CancelByID is Cancel for the admin order table, which addresses orders by id.
func (s *OrderService) CancelByID(actor entity.Actor, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetByID(s.DB, orderID)
	if err != nil {
		return nil, asAppError(err, "Order not found")
	}
	return s.cancel(actor, o)
}

func (s *OrderService) cancel(actor entity.Actor, o *entity.Order) (*entity.Order, error) {
	number := o.OrderNumber
	var from []entity.OrderStatus
	switch {
	case actor.Is(entity.RoleAdmin):
		from = nonTerminalStatuses
	case !actor.IsAnonymous() && o.OwnedBy(actor.UserID):
		from = []entity.OrderStatus{entity.OrderPending}
	default:
		return nil, NewForbidden("You cannot cancel this order")
	}

	ok, err := s.Repo.UpdateStatusFromTo(s.DB, o.ID, from, entity.OrderCancelled)
	if err != nil {
		return nil, NewPersistence(err)
	}
	if !ok {
		return nil, NewConflict("This order can no longer be cancelled")
	}
	s.log.WithFields(logrus.Fields{"order": number, "by": actor.UserID}).Info("order cancelled")
	return s.byNumber(number)
}

type StatusIn struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateStatus sets any status directly. Moving an order to delivered
// stamps the delivery time and credits loyalty points, still only once per order.
func (s *OrderService) AdminUpdateStatus(actor entity.Actor, orderID uint, in StatusIn) (*entity.Order, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	to, err := entity.ParseOrderStatus(in.Status)
	if err != nil {
		return nil, NewValidation("Unknown order status")
	}

	var out *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetByID(tx, orderID)
		if err != nil {
			return asAppError(err, "Order not found")
		}
		var deliveredAt *time.Time
		if to == entity.OrderDelivered {
			now := tx.NowFunc()
			deliveredAt = &now
		}
		if _, err := s.Repo.SetStatus(tx, o.ID, to, deliveredAt); err != nil {
			return err
		}
		if to == entity.OrderDelivered {
			if _, err := s.Loyalty.CreditForOrder(tx, o); err != nil {
				return err
			}
		}
		out, err = s.Repo.GetByID(tx, o.ID)
		return err
	})
	if err != nil {
		if KindOf(err) == KindPersistence {
			s.log.WithError(err).WithField("order", orderID).Error("admin status update")
		}
		return nil, asAppError(err, "")
	}
	s.log.WithFields(logrus.Fields{"order": out.OrderNumber, "status": to, "by": actor.UserID}).Info("order status overridden")
	return out, nil
}
