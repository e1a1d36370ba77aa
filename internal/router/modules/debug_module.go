package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/internal/interface/middleware"
)

type DebugModule struct {
	Counter middleware.Counter
}

func NewDebugModule(counter middleware.Counter) *DebugModule { return &DebugModule{Counter: counter} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics; private networks are not rate limited
	rl := middleware.RateLimit(m.Counter, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
