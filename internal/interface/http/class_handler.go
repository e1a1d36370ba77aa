package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	"github.com/Renanf68/nlw2-server/pkg/response"
	"github.com/Renanf68/nlw2-server/pkg/validation"
)

// ClassUseCases is the part of application.ClassService used over HTTP.
type ClassUseCases interface {
	Search(ctx context.Context, subject, weekDay, clock string) ([]entity.ClassListing, error)
	Enroll(ctx context.Context, in application.EnrollInput) (int64, error)
}

type ClassHandler struct {
	Svc    ClassUseCases
	Logger *logrus.Logger
}

func NewClassHandler(svc ClassUseCases, logger *logrus.Logger) *ClassHandler {
	return &ClassHandler{Svc: svc, Logger: logger}
}

type scheduleRequest struct {
	WeekDay *int   `json:"week_day" binding:"required,weekday"`
	From    string `json:"from" binding:"required,clock"`
	To      string `json:"to" binding:"required,clock"`
}

type createClassRequest struct {
	Name     string            `json:"name" binding:"required"`
	Avatar   string            `json:"avatar"`
	Whatsapp string            `json:"whatsapp" binding:"required"`
	Bio      string            `json:"bio"`
	Subject  string            `json:"subject" binding:"required"`
	Cost     *float64          `json:"cost" binding:"required,gte=0"`
	Schedule []scheduleRequest `json:"schedule" binding:"dive"`
}

type classResponse struct {
	ID       int64   `json:"id"`
	Subject  string  `json:"subject"`
	Cost     float64 `json:"cost"`
	UserID   int64   `json:"user_id"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar"`
	Whatsapp string  `json:"whatsapp"`
	Bio      string  `json:"bio"`
}

func toClassResponse(l entity.ClassListing) classResponse {
	return classResponse{
		ID:       l.ID,
		Subject:  l.Subject,
		Cost:     l.Cost,
		UserID:   l.User.ID,
		Name:     l.User.Name,
		Avatar:   l.User.Avatar,
		Whatsapp: l.User.Whatsapp,
		Bio:      l.User.Bio,
	}
}

// Index handles GET /classes?subject=&week_day=&time=.
func (h *ClassHandler) Index(c *gin.Context) {
	listings, err := h.Svc.Search(c.Request.Context(), c.Query("subject"), c.Query("week_day"), c.Query("time"))
	switch {
	case err == nil:
	case errors.Is(err, application.ErrMissingFilter):
		response.Error(c, http.StatusBadRequest, "Missing filters for classes search", nil)
		return
	case errors.Is(err, application.ErrInvalidWeekDay), errors.Is(err, entity.ErrInvalidFormat):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	default:
		response.Error(c, http.StatusInternalServerError, "Unexpected error while searching classes", nil)
		return
	}

	out := make([]classResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toClassResponse(l))
	}
	response.JSON(c, http.StatusOK, gin.H{"classes": out})
}

// Create handles POST /classes.
func (h *ClassHandler) Create(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithError(err).Debug("invalid class payload")
		response.Error(c, http.StatusBadRequest, "Unexpected error while creating new class", validation.ToDetails(err))
		return
	}

	in := application.EnrollInput{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Whatsapp: req.Whatsapp,
		Bio:      req.Bio,
		Subject:  req.Subject,
		Cost:     *req.Cost,
		Schedule: make([]application.ScheduleInput, 0, len(req.Schedule)),
	}
	for _, s := range req.Schedule {
		in.Schedule = append(in.Schedule, application.ScheduleInput{WeekDay: *s.WeekDay, From: s.From, To: s.To})
	}

	if _, err := h.Svc.Enroll(c.Request.Context(), in); err != nil {
		response.Error(c, http.StatusBadRequest, "Unexpected error while creating new class", nil)
		return
	}
	response.Message(c, http.StatusCreated, "class created successfully")
}
