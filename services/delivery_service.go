// services/delivery_service.go
package services

import (
	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DeliveryService drives orders from the kitchen to the door.
// Every step is one conditional update on the order row, so concurrent
// delivery people cannot both win the same order.
type DeliveryService struct {
	DB        *gorm.DB
	OrderRepo *repository.OrderRepository
	Loyalty   *LoyaltyService
	log       *logrus.Entry
}

func NewDeliveryService(db *gorm.DB, orderRepo *repository.OrderRepository, loyalty *LoyaltyService, log *logrus.Entry) *DeliveryService {
	return &DeliveryService{DB: db, OrderRepo: orderRepo, Loyalty: loyalty, log: log}
}

type DeliveryDashboard struct {
	AssignedOrders  []entity.Order `json:"assignedOrders"`
	AvailableOrders []entity.Order `json:"availableOrders"`
	TotalAssigned   int            `json:"totalAssigned"`
	DeliveredToday  int64          `json:"deliveredToday"`
}

func (s *DeliveryService) Dashboard(actor entity.Actor) (*DeliveryDashboard, error) {
	if err := requireRole(actor, entity.RoleDelivery); err != nil {
		return nil, err
	}
	assigned, err := s.OrderRepo.AssignedTo(actor.UserID)
	if err != nil {
		return nil, NewPersistence(err)
	}
	available, err := s.OrderRepo.Available()
	if err != nil {
		return nil, NewPersistence(err)
	}
	today, err := s.OrderRepo.CountDeliveredSince(actor.UserID, utils.StartOfDay(s.DB.NowFunc()))
	if err != nil {
		return nil, NewPersistence(err)
	}
	return &DeliveryDashboard{
		AssignedOrders:  assigned,
		AvailableOrders: available,
		TotalAssigned:   len(assigned),
		DeliveredToday:  today,
	}, nil
}

// Claim assigns a ready order to the caller.
func (s *DeliveryService) Claim(actor entity.Actor, orderID uint) (*entity.Order, error) {
	return s.step(actor, orderID, "claim", func(tx *gorm.DB) (bool, error) {
		return s.OrderRepo.Claim(tx, orderID, actor.UserID)
	}, func(o *entity.Order) error {
		switch {
		case o.AssignedTo(actor.UserID):
			return NewConflict("Order is already assigned to you")
		case o.DeliveryPersonID != nil:
			return NewConflict("Order is already assigned to another delivery person")
		}
		return NewConflict("Order is not ready for delivery")
	})
}

// Pickup: preparing (or confirmed) → out_for_delivery, assigned person only.
func (s *DeliveryService) Pickup(actor entity.Actor, orderID uint) (*entity.Order, error) {
	return s.step(actor, orderID, "pickup", func(tx *gorm.DB) (bool, error) {
		return s.OrderRepo.Pickup(tx, orderID, actor.UserID)
	}, func(o *entity.Order) error {
		if !o.AssignedTo(actor.UserID) {
			return NewForbidden("This order is not assigned to you")
		}
		return NewConflict("Order cannot be picked up in status " + o.Status.Display())
	})
}

// Complete: out_for_delivery → delivered. Payment is marked collected and
// the customer's loyalty points are credited in the same transaction.
func (s *DeliveryService) Complete(actor entity.Actor, orderID uint) (*entity.Order, error) {
	return s.step(actor, orderID, "complete", func(tx *gorm.DB) (bool, error) {
		ok, err := s.OrderRepo.Complete(tx, orderID, actor.UserID, tx.NowFunc())
		if err != nil || !ok {
			return ok, err
		}
		o, err := s.OrderRepo.GetByID(tx, orderID)
		if err != nil {
			return false, err
		}
		_, err = s.Loyalty.CreditForOrder(tx, o)
		return err == nil, err
	}, func(o *entity.Order) error {
		if !o.AssignedTo(actor.UserID) {
			return NewForbidden("This order is not assigned to you")
		}
		return NewConflict("Order cannot be completed in status " + o.Status.Display())
	})
}

// step runs a guarded update; when it matches no row, explain decides why.
func (s *DeliveryService) step(
	actor entity.Actor,
	orderID uint,
	name string,
	update func(tx *gorm.DB) (bool, error),
	explain func(o *entity.Order) error,
) (*entity.Order, error) {
	if err := requireRole(actor, entity.RoleDelivery); err != nil {
		return nil, err
	}

	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := update(tx)
		if err != nil {
			return err
		}
		o, err := s.OrderRepo.GetByID(tx, orderID)
		if err != nil {
			return asAppError(err, "Order not found")
		}
		if !ok {
			return explain(o)
		}
		out = o
		return nil
	})
	if err != nil {
		if KindOf(err) == KindPersistence {
			s.log.WithError(err).WithField("order", orderID).Errorf("delivery %s", name)
		}
		return nil, asAppError(err, "")
	}
	s.log.WithFields(logrus.Fields{"order": out.OrderNumber, "by": actor.UserID, "status": out.Status}).Infof("delivery %s", name)
	return out, nil
}
