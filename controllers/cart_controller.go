package controllers

import (
	"net/http"

	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.Get(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Item not available")
		return
	}
	actor := utils.CurrentActor(c)
	item, err := h.Svc.Add(actor, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"message":   item.Name + " added to cart",
		"cartCount": h.Svc.Count(actor),
	})
}

// PATCH /cart/items
func (h *CartController) UpdateQty(c *gin.Context) {
	var req services.UpdateCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid quantity")
		return
	}
	actor := utils.CurrentActor(c)
	if err := h.Svc.UpdateQty(actor, req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cartCount": h.Svc.Count(actor)})
}

// DELETE /cart/items/:menuItemId
func (h *CartController) Remove(c *gin.Context) {
	id, ok := paramID(c, "menuItemId")
	if !ok {
		return
	}
	actor := utils.CurrentActor(c)
	if err := h.Svc.Remove(actor, id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cartCount": h.Svc.Count(actor)})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentActor(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cartCount": 0})
}

// GET /api/cart_count
func (h *CartController) Count(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.Svc.Count(utils.CurrentActor(c))})
}
