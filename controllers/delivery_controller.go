package controllers

import (
	"fmt"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type DeliveryController struct{ Svc *services.DeliveryService }

func NewDeliveryController(s *services.DeliveryService) *DeliveryController {
	return &DeliveryController{Svc: s}
}

// GET /delivery
func (h *DeliveryController) Dashboard(c *gin.Context) {
	out, err := h.Svc.Dashboard(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /delivery/orders/:id/assign
func (h *DeliveryController) Assign(c *gin.Context) {
	h.step(c, h.Svc.Claim, "Order %s assigned to you")
}

// POST /delivery/orders/:id/pickup
func (h *DeliveryController) Pickup(c *gin.Context) {
	h.step(c, h.Svc.Pickup, "Order %s is out for delivery")
}

// POST /delivery/orders/:id/complete
func (h *DeliveryController) Complete(c *gin.Context) {
	h.step(c, h.Svc.Complete, "Order %s delivered")
}

func (h *DeliveryController) step(c *gin.Context, do func(entity.Actor, uint) (*entity.Order, error), msg string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := do(utils.CurrentActor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": fmt.Sprintf(msg, o.OrderNumber), "order": o})
}
