package services

import (
	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// QRGenerator renders the payment artifact for a UPI order.
type QRGenerator interface {
	PaymentQR(orderNumber string, amount decimal.Decimal) (link, dataURL string, err error)
}

type OrderService struct {
	DB      *gorm.DB
	Repo    *repository.OrderRepository
	Loyalty *LoyaltyService
	Store   *StoreService
	QR      QRGenerator
	log     *logrus.Entry
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, loyalty *LoyaltyService, store *StoreService, qr QRGenerator, log *logrus.Entry) *OrderService {
	return &OrderService{DB: db, Repo: repo, Loyalty: loyalty, Store: store, QR: qr, log: log}
}

func (s *OrderService) byNumber(number string) (*entity.Order, error) {
	o, err := s.Repo.GetByNumber(number)
	if err != nil {
		return nil, asAppError(err, "Order not found")
	}
	return o, nil
}

// canView: guest orders are reachable by their number alone;
// account orders only by the owner, staff, or the assigned delivery person.
func canView(actor entity.Actor, o *entity.Order) error {
	switch {
	case o.IsGuest():
		return nil
	case actor.IsAnonymous():
		return NewForbidden("Please log in to view this order")
	case actor.Is(entity.RoleAdmin), o.OwnedBy(actor.UserID), o.AssignedTo(actor.UserID):
		return nil
	}
	return NewForbidden("Access denied")
}

func (s *OrderService) Detail(actor entity.Actor, number string) (*entity.Order, error) {
	o, err := s.byNumber(number)
	if err != nil {
		return nil, err
	}
	if err := canView(actor, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListForUser(actor entity.Actor) ([]entity.Order, error) {
	if err := requireLogin(actor, "Please login to view your orders"); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListForUser(actor.UserID)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

// ----- Payment -----

type PaymentArtifact struct {
	OrderNumber   string               `json:"orderNumber"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	UPILink       string               `json:"upiLink"`
	QRCode        string               `json:"qrCode"` // data:image/png;base64,...
}

func (s *OrderService) PaymentArtifact(actor entity.Actor, number string) (*PaymentArtifact, error) {
	o, err := s.Detail(actor, number)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != entity.PaymentUPI {
		return nil, NewValidation("This order is not paid by UPI")
	}
	link, qr, err := s.QR.PaymentQR(o.OrderNumber, o.TotalAmount)
	if err != nil {
		s.log.WithError(err).WithField("order", number).Error("render payment qr")
		return nil, NewPersistence(err)
	}
	return &PaymentArtifact{
		OrderNumber: o.OrderNumber, Amount: o.TotalAmount, PaymentStatus: o.PaymentStatus,
		UPILink: link, QRCode: qr,
	}, nil
}

// ConfirmPayment records that a UPI payment was made. Repeating it is harmless.
func (s *OrderService) ConfirmPayment(actor entity.Actor, number string) (*entity.Order, error) {
	o, err := s.Detail(actor, number)
	if err != nil {
		return nil, err
	}
	if o.Status == entity.OrderCancelled {
		return nil, NewConflict("This order was cancelled")
	}
	if o.PaymentStatus == entity.PaymentConfirmed {
		return o, nil
	}

	now := s.DB.NowFunc()
	if _, err := s.Repo.ConfirmPayment(s.DB, o.ID, now); err != nil {
		s.log.WithError(err).WithField("order", number).Error("confirm payment")
		return nil, NewPersistence(err)
	}
	s.log.WithField("order", number).Info("payment confirmed")
	return s.byNumber(number)
}

// ----- Tracking -----

// StatusSnapshot is the body of GET /api/order_status/:orderNumber.
type StatusSnapshot struct {
	Status             entity.OrderStatus   `json:"status"`
	StatusDisplay      string               `json:"status_display"`
	ProgressPercentage int                  `json:"progress_percentage"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	OrderItemsCount    int                  `json:"order_items_count"`
	TotalAmount        decimal.Decimal      `json:"total_amount"`
	LastUpdated        string               `json:"last_updated"`
	EstimatedTime      string               `json:"estimated_time"`
}

var estimatedTimes = map[entity.OrderStatus]string{
	entity.OrderPending:        "30-45 minutes",
	entity.OrderConfirmed:      "30-45 minutes",
	entity.OrderPreparing:      "25-35 minutes",
	entity.OrderOutForDelivery: "10-15 minutes",
}

// StatusSnapshot is public: the order number is the only credential the tracking page has.
func (s *OrderService) StatusSnapshot(number string) (*StatusSnapshot, error) {
	o, err := s.byNumber(number)
	if err != nil {
		return nil, err
	}
	return &StatusSnapshot{
		Status:             o.Status,
		StatusDisplay:      o.Status.Display(),
		ProgressPercentage: o.Status.Progress(),
		PaymentStatus:      o.PaymentStatus,
		OrderItemsCount:    len(o.Items),
		TotalAmount:        o.TotalAmount,
		LastUpdated:        o.UpdatedAt.In(s.DB.NowFunc().Location()).Format("03:04 PM MST"),
		EstimatedTime:      estimatedTimes[o.Status],
	}, nil
}

// ----- Admin -----

type AdminDashboard struct {
	Stats        *repository.OrderStats `json:"stats"`
	StoreOpen    bool                   `json:"storeOpen"`
	RecentOrders []entity.Order         `json:"recentOrders"`
}

func (s *OrderService) Dashboard(actor entity.Actor) (*AdminDashboard, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	stats, err := s.Repo.Stats(utils.StartOfDay(s.DB.NowFunc()))
	if err != nil {
		return nil, NewPersistence(err)
	}
	recent, err := s.Repo.ListAll("", 10)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return &AdminDashboard{Stats: stats, StoreOpen: s.Store.IsOpen(), RecentOrders: recent}, nil
}

func (s *OrderService) AdminList(actor entity.Actor, status string) ([]entity.Order, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	var st entity.OrderStatus
	if status != "" && status != "all" {
		var err error
		if st, err = entity.ParseOrderStatus(status); err != nil {
			return nil, NewValidation("Unknown order status")
		}
	}
	out, err := s.Repo.ListAll(st, 0)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}
