package controllers

import (
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

// AdminController covers the dashboard, order overrides and account management.
type AdminController struct {
	Orders *services.OrderService
	Users  *services.UserService
}

func NewAdminController(orders *services.OrderService, users *services.UserService) *AdminController {
	return &AdminController{Orders: orders, Users: users}
}

// GET /admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	out, err := ac.Orders.Dashboard(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/orders?status=
func (ac *AdminController) ListOrders(c *gin.Context) {
	out, err := ac.Orders.AdminList(utils.CurrentActor(c), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /admin/orders/:id/status
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.StatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Unknown order status")
		return
	}
	o, err := ac.Orders.AdminUpdateStatus(utils.CurrentActor(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Order " + o.OrderNumber + " status updated to " + string(o.Status), "order": o})
}

// POST /admin/orders/:id/cancel
func (ac *AdminController) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := ac.Orders.CancelByID(utils.CurrentActor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /admin/users?role=&status=
func (ac *AdminController) ListUsers(c *gin.Context) {
	out, err := ac.Users.List(utils.CurrentActor(c), c.Query("role"), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/users/:id/toggle
func (ac *AdminController) ToggleUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := ac.Users.ToggleActive(utils.CurrentActor(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// PATCH /admin/users/:id
func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UserUpdateIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid user data")
		return
	}
	u, err := ac.Users.Update(utils.CurrentActor(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}
