package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/pkg/response"
)

type SubjectSuggester interface {
	Suggest(ctx context.Context, prefix string, size int) ([]string, error)
}

type SubjectHandler struct {
	Svc SubjectSuggester
}

func NewSubjectHandler(svc SubjectSuggester) *SubjectHandler {
	return &SubjectHandler{Svc: svc}
}

// Index handles GET /subjects?q=&size=.
func (h *SubjectHandler) Index(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	subjects, err := h.Svc.Suggest(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "subject search unavailable", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"subjects": subjects})
}
