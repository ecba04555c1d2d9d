package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/application"
	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/pkg/response"
	"github.com/webmuseum/expo-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AccountService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func accountSummary(a *entity.Account) gin.H {
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
		"createdAt":  a.CreatedAt,
	}
}

// List GET /api/users
// Returns a simple list of accounts for the admin table.
func (h *UserHandler) List(c *gin.Context) {
	accounts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Internal(c)
		return
	}
	out := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountSummary(a))
	}
	c.JSON(http.StatusOK, out)
}

// BulkDelete DELETE /api/users
// Deletes the accounts whose ids are supplied in the request body.
func (h *UserHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return
	}

	deleted, err := h.Svc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, application.ErrNoValidIDs) {
			response.Message(c, http.StatusBadRequest, "Please provide at least one valid user id.")
			return
		}
		h.Logger.WithError(err).Error("bulk delete users failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Users deleted successfully.",
		"deletedCount": deleted,
	})
}
