package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Renanf68/nlw2-server/internal/interface/http"
)

type AvatarModule struct {
	Handler *handlers.AvatarHandler
	Limit   WriteLimit
}

func NewAvatarModule(h *handlers.AvatarHandler, limit WriteLimit) *AvatarModule {
	return &AvatarModule{Handler: h, Limit: limit}
}

func (m *AvatarModule) Register(rg *gin.RouterGroup) {
	rg.POST("/avatars", m.Limit.handler(), m.Handler.Upload)
}
