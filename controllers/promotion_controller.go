package controllers

import (
	"net/http"

	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PromotionController struct{ Svc *services.PromotionService }

func NewPromotionController(s *services.PromotionService) *PromotionController {
	return &PromotionController{Svc: s}
}

type validateCouponReq struct {
	CouponCode string          `json:"coupon_code"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// POST /api/validate_coupon
// Always 200 with {valid, message, ...}; the checkout page reads the flag, not the status.
func (h *PromotionController) ValidateCoupon(c *gin.Context) {
	var req validateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, services.CouponResult{Message: "Error validating coupon. Please try again."})
		return
	}
	c.JSON(http.StatusOK, h.Svc.Validate(req.CouponCode, req.Subtotal))
}

// GET /promotions
func (h *PromotionController) Available(c *gin.Context) {
	out, err := h.Svc.ListAvailable()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// ===== Admin =====

// GET /admin/promotions?filter=all|active|inactive|expired
func (h *PromotionController) List(c *gin.Context) {
	out, err := h.Svc.List(utils.CurrentActor(c), c.DefaultQuery("filter", "all"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/promotions
func (h *PromotionController) Create(c *gin.Context) {
	var req services.PromotionIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid promotion data")
		return
	}
	p, err := h.Svc.Create(utils.CurrentActor(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /admin/promotions/:id
func (h *PromotionController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.PromotionIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid promotion data")
		return
	}
	p, err := h.Svc.Update(utils.CurrentActor(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// POST /admin/promotions/:id/toggle
func (h *PromotionController) Toggle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Toggle(utils.CurrentActor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /admin/promotions/:id
func (h *PromotionController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(utils.CurrentActor(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
