package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/application"
	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/internal/interface/middleware"
	"github.com/webmuseum/expo-api/pkg/response"
	"github.com/webmuseum/expo-api/pkg/validation"
)

type ExpoHandler struct {
	Svc    *application.ExpoService
	Logger *logrus.Logger
}

func NewExpoHandler(svc *application.ExpoService, logger *logrus.Logger) *ExpoHandler {
	return &ExpoHandler{Svc: svc, Logger: logger}
}

type createExpoRequest struct {
	ExpoID      string `json:"expoId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Author      string `json:"author"`
	PhotoURL    string `json:"photoUrl"`
	Date        string `json:"date" binding:"required"`
}

type updateExpoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	PhotoURL    *string `json:"photoUrl"`
	Date        *string `json:"date"`
}

func expoView(e *entity.Expo) gin.H {
	return gin.H{
		"id":          e.ID,
		"expoId":      e.ExpoID,
		"title":       e.Title,
		"description": e.Description,
		"author":      e.Author,
		"photoUrl":    e.PhotoURL,
		"date":        e.Date,
		"createdAt":   e.CreatedAt,
		"updatedAt":   e.UpdatedAt,
	}
}

func parseExpoDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return validation.ParseBirthDate(raw) // same date-only fallback
}

// List GET /api/expos
func (h *ExpoHandler) List(c *gin.Context) {
	expos, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list expos failed")
		response.Internal(c)
		return
	}
	out := make([]gin.H, 0, len(expos))
	for _, e := range expos {
		out = append(out, expoView(e))
	}
	c.JSON(http.StatusOK, out)
}

// Get GET /api/expos/:expoId
func (h *ExpoHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("expoId"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "Exhibition not found.")
			return
		}
		h.Logger.WithError(err).Error("get expo failed")
		response.Internal(c)
		return
	}
	c.JSON(http.StatusOK, expoView(e))
}

// Create POST /api/expos
func (h *ExpoHandler) Create(c *gin.Context) {
	var req createExpoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return
	}
	date, err := parseExpoDate(req.Date)
	if err != nil {
		response.Validation(c, map[string]string{"date": "must be a valid date"})
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), application.CreateExpoInput{
		ExpoID:      req.ExpoID,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		PhotoURL:    req.PhotoURL,
		Date:        date,
		CreatedBy:   c.GetString(middleware.CtxUserIDKey),
	})
	if err != nil {
		if errors.Is(err, application.ErrExpoExists) {
			response.Message(c, http.StatusConflict, "An exhibition with this expoId already exists.")
			return
		}
		h.Logger.WithError(err).Error("create expo failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Exhibition created.", "expo": expoView(e)})
}

// Update PUT /api/expos/:expoId
// Accepts a partial field set; only supplied fields are validated and applied.
func (h *ExpoHandler) Update(c *gin.Context) {
	var req updateExpoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return
	}

	in := application.UpdateExpoInput{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		PhotoURL:    req.PhotoURL,
	}
	errs := map[string]string{}
	if req.Title != nil && *req.Title == "" {
		errs["title"] = "is required"
	}
	if req.Description != nil && *req.Description == "" {
		errs["description"] = "is required"
	}
	if req.Date != nil {
		date, err := parseExpoDate(*req.Date)
		if err != nil {
			errs["date"] = "must be a valid date"
		} else {
			in.Date = &date
		}
	}
	if len(errs) > 0 {
		response.Validation(c, errs)
		return
	}

	e, err := h.Svc.Update(c.Request.Context(), c.Param("expoId"), in)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "Exhibition not found.")
			return
		}
		h.Logger.WithError(err).Error("update expo failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exhibition updated.", "expo": expoView(e)})
}

// Delete DELETE /api/expos/:expoId
func (h *ExpoHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("expoId")); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "Exhibition not found.")
			return
		}
		h.Logger.WithError(err).Error("delete expo failed")
		response.Internal(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exhibition deleted."})
}

// UploadPhoto POST /api/expos/:expoId/photo
func (h *ExpoHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		response.Validation(c, map[string]string{"photo": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("open uploaded photo failed")
		response.Internal(c)
		return
	}
	defer func() { _ = f.Close() }()

	e, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("expoId"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Message(c, http.StatusNotFound, "Exhibition not found.")
			return
		}
		h.Logger.WithError(err).Error("upload expo photo failed")
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded.", "expo": expoView(e)})
}

// Search GET /api/expos/search?q=
func (h *ExpoHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Validation(c, map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("search expos failed")
		response.Internal(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits})
}
