package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/internal/domain/repository"
	"github.com/Renanf68/nlw2-server/pkg/response"
	"github.com/Renanf68/nlw2-server/pkg/validation"
)

type ConnectionUseCases interface {
	Create(ctx context.Context, userID int64) error
	Total(ctx context.Context) (int64, error)
}

type ConnectionHandler struct {
	Svc ConnectionUseCases
}

func NewConnectionHandler(svc ConnectionUseCases) *ConnectionHandler {
	return &ConnectionHandler{Svc: svc}
}

type createConnectionRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

func (h *ConnectionHandler) Index(c *gin.Context) {
	total, err := h.Svc.Total(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Unexpected error while counting connections", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"total": total})
}

func (h *ConnectionHandler) Create(c *gin.Context) {
	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Create(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(c, http.StatusBadRequest, "user not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Unexpected error while creating connection", nil)
		return
	}
	response.Message(c, http.StatusCreated, "connection created successfully")
}
