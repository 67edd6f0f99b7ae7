package controllers

import (
	"net/http"

	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{Checkout: checkout, Orders: orders}
}

// ===== Checkout =====

// POST /checkout/quote
func (oc *OrderController) Quote(c *gin.Context) {
	var req services.QuoteIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid cart")
		return
	}
	view, err := oc.Checkout.Quote(utils.CurrentActor(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /checkout
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Please fill in all required fields")
		return
	}
	out, err := oc.Checkout.Checkout(utils.CurrentActor(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// ===== Orders =====

// GET /orders/:orderNumber
func (oc *OrderController) Detail(c *gin.Context) {
	o, err := oc.Orders.Detail(utils.CurrentActor(c), c.Param("orderNumber"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders/:orderNumber/payment
func (oc *OrderController) Payment(c *gin.Context) {
	art, err := oc.Orders.PaymentArtifact(utils.CurrentActor(c), c.Param("orderNumber"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, art)
}

// POST /orders/:orderNumber/confirm_payment
func (oc *OrderController) ConfirmPayment(c *gin.Context) {
	o, err := oc.Orders.ConfirmPayment(utils.CurrentActor(c), c.Param("orderNumber"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Payment confirmed! Your order is being processed.", "order": o})
}

// POST /orders/:orderNumber/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	o, err := oc.Orders.Cancel(utils.CurrentActor(c), c.Param("orderNumber"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /my/orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	out, err := oc.Orders.ListForUser(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/order_status/:orderNumber
// Polled by the tracking page; the body is the bare snapshot.
func (oc *OrderController) Status(c *gin.Context) {
	snap, err := oc.Orders.StatusSnapshot(c.Param("orderNumber"))
	if err != nil {
		c.JSON(resp.StatusFor(err), gin.H{"error": services.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, snap)
}
