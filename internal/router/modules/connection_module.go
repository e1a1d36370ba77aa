package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Renanf68/nlw2-server/internal/interface/http"
)

type ConnectionModule struct {
	Handler *handlers.ConnectionHandler
	Limit   WriteLimit
}

func NewConnectionModule(h *handlers.ConnectionHandler, limit WriteLimit) *ConnectionModule {
	return &ConnectionModule{Handler: h, Limit: limit}
}

func (m *ConnectionModule) Register(rg *gin.RouterGroup) {
	rg.GET("/connections", m.Handler.Index)
	rg.POST("/connections", m.Limit.handler(), m.Handler.Create)
}
