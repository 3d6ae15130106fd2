package bootstrap

import (
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestServe_RunsShutdownHooks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM

	var order []string
	cfg := DefaultServerConfig("0")
	Serve(gin.New(), cfg, zap.NewNop(), stop,
		func(context.Context) error { order = append(order, "first"); return nil },
		func(context.Context) error { order = append(order, "second"); return nil },
	)

	assert.Equal(t, []string{"first", "second"}, order)
}
