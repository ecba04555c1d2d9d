package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/application"
	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/internal/interface/middleware"
	"github.com/webmuseum/expo-api/pkg/helpers"
	"github.com/webmuseum/expo-api/pkg/response"
	"github.com/webmuseum/expo-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger}
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,pwd"`
	FirstName  string `json:"firstName" binding:"required,personname"`
	LastName   string `json:"lastName" binding:"required,personname"`
	MiddleName string `json:"middleName" binding:"omitempty,personname"`
	Gender     string `json:"gender" binding:"omitempty,oneof=male female"`
	BirthDate  string `json:"birthDate" binding:"required,birthdate"`
	Phone      string `json:"phone" binding:"required,uaphone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// accountView is the sanitized profile returned to clients. The password
// hash never appears here.
func accountView(a *entity.Account) gin.H {
	var gender any
	if a.Gender != "" {
		gender = a.Gender
	}
	return gin.H{
		"id":         a.ID,
		"email":      a.Email,
		"firstName":  a.FirstName,
		"lastName":   a.LastName,
		"middleName": a.MiddleName,
		"gender":     gender,
		"birthDate":  a.BirthDate.Format("2006-01-02"),
		"phone":      a.Phone,
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return
	}

	birthDate, err := validation.ParseBirthDate(req.BirthDate)
	if err != nil {
		response.Validation(c, map[string]string{"birthDate": "must be a valid date"})
		return
	}

	a, token, _, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Gender:     req.Gender,
		BirthDate:  birthDate,
		Phone:      req.Phone,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Message(c, http.StatusConflict, "A user with this email already exists.")
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"token":   token,
		"user":    accountView(a),
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return
	}

	a, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// same body for unknown email and wrong password
			response.Message(c, http.StatusUnauthorized, "Incorrect email or password.")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully.",
		"token":   token,
		"user":    accountView(a),
	})
}

// Verify GET /api/auth/verify
// Diagnostic endpoint for the frontend to confirm session validity on load.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := middleware.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		response.Message(c, http.StatusUnauthorized, "Authorization token is missing.")
		return
	}
	claims, err := h.JWT.Parse(token)
	if err != nil {
		response.Message(c, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid.",
		"payload": gin.H{
			"sub":   claims.Subject,
			"email": claims.Email,
			"iat":   claims.IssuedAt,
			"exp":   claims.ExpiresAt,
		},
	})
}
