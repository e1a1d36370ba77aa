package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Renanf68/nlw2-server/internal/interface/http"
)

type SubjectModule struct {
	Handler *handlers.SubjectHandler
}

func NewSubjectModule(h *handlers.SubjectHandler) *SubjectModule {
	return &SubjectModule{Handler: h}
}

func (m *SubjectModule) Register(rg *gin.RouterGroup) {
	rg.GET("/subjects", m.Handler.Index)
}
