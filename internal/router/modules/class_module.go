package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/Renanf68/nlw2-server/internal/interface/http"
	"github.com/Renanf68/nlw2-server/internal/interface/middleware"
)

// WriteLimit is the per-IP budget applied to every write route.
type WriteLimit struct {
	Counter middleware.Counter
	Max     int
	Window  time.Duration
}

func (l WriteLimit) handler() gin.HandlerFunc {
	return middleware.RateLimit(l.Counter, l.Max, l.Window, middleware.KeyByIPAndPath(), nil)
}

// ClassModule serves GET /api/classes and POST /api/classes.
type ClassModule struct {
	Handler *handlers.ClassHandler
	Limit   WriteLimit
}

func NewClassModule(h *handlers.ClassHandler, limit WriteLimit) *ClassModule {
	return &ClassModule{Handler: h, Limit: limit}
}

func (m *ClassModule) Register(rg *gin.RouterGroup) {
	rg.GET("/classes", m.Handler.Index)
	rg.POST("/classes", m.Limit.handler(), m.Handler.Create)
}
