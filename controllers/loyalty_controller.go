package controllers

import (
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type LoyaltyController struct{ Svc *services.LoyaltyService }

func NewLoyaltyController(s *services.LoyaltyService) *LoyaltyController {
	return &LoyaltyController{Svc: s}
}

// GET /loyalty
func (h *LoyaltyController) Summary(c *gin.Context) {
	out, err := h.Svc.Summary(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /loyalty/redeem
func (h *LoyaltyController) Redeem(c *gin.Context) {
	var req services.RedeemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Please enter the points to redeem")
		return
	}
	out, err := h.Svc.Redeem(utils.CurrentActor(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
