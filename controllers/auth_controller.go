package controllers

import (
	"github.com/Himanshu790310/biryaniclub7/pkg/resp"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Please fill in all required fields")
		return
	}
	user, err := a.Svc.Register(req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req services.LoginIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Please enter your username and password")
		return
	}
	out, err := a.Svc.Login(req)
	if err != nil {
		// bad credentials are a 401, everything else keeps its kind
		if services.KindOf(err) == services.KindAuthorization {
			resp.Unauthorized(c, services.UserMessage(err))
			return
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Svc.Profile(utils.CurrentActor(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	info, _ := user.TierInfo()
	resp.OK(c, gin.H{"user": user, "tier": info})
}
