package controllers

import (
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type StoreController struct{ Svc *services.StoreService }

func NewStoreController(s *services.StoreService) *StoreController { return &StoreController{Svc: s} }

// GET /store
func (h *StoreController) Status(c *gin.Context) {
	resp.OK(c, gin.H{"open": h.Svc.IsOpen()})
}

// POST /admin/store/toggle
func (h *StoreController) Toggle(c *gin.Context) {
	open, err := h.Svc.Toggle(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	msg := "Store is now closed"
	if open {
		msg = "Store is now open"
	}
	resp.OK(c, gin.H{"open": open, "message": msg})
}
