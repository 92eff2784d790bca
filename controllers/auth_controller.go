package controllers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vacarent/constants"
	"vacarent/models"
	"vacarent/response"
	"vacarent/services"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login valida credenciales y emite el token de sesión
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email y contraseña son obligatorios")
		return
	}

	var user models.User
	if err := ctl.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Unauthorized(c)
		return
	}

	if user.Status != constants.UserStatusActive {
		response.Forbidden(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
