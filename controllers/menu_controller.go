package controllers

import (
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc   *services.MenuService
	Store *services.StoreService
}

func NewMenuController(s *services.MenuService, store *services.StoreService) *MenuController {
	return &MenuController{Svc: s, Store: store}
}

// GET /menu?search=&category=
func (h *MenuController) List(c *gin.Context) {
	items, err := h.Svc.List(c.Query("search"), c.Query("category"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	cats, err := h.Svc.Categories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "categories": cats, "storeOpen": h.Store.IsOpen()})
}

// GET /menu/popular
func (h *MenuController) Popular(c *gin.Context) {
	items, err := h.Svc.Popular()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menu/categories
func (h *MenuController) Categories(c *gin.Context) {
	cats, err := h.Svc.Categories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

// ===== Admin =====

// GET /admin/menu?category=&stock=
func (h *MenuController) AdminList(c *gin.Context) {
	items, err := h.Svc.AdminList(utils.CurrentActor(c), c.Query("category"), c.Query("stock"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /admin/menu
func (h *MenuController) Create(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Name and category are required")
		return
	}
	item, err := h.Svc.Create(utils.CurrentActor(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /admin/menu/:id
func (h *MenuController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Name and category are required")
		return
	}
	item, err := h.Svc.Update(utils.CurrentActor(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /admin/menu/:id/toggle
func (h *MenuController) ToggleStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	inStock, err := h.Svc.ToggleStock(utils.CurrentActor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "inStock": inStock})
}
