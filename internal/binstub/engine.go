package binstub

import (
	"net/http"
	"time"

	"bincheck/internal/bin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewEngine returns the gin engine serving the stub routes.
func NewEngine(store *Store, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Error("panic in handler", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}))

	h := &handler{store: store}
	r.GET("/lookup/:bin", h.lookup)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

type handler struct {
	store *Store
}

func (h *handler) lookup(c *gin.Context) {
	digits := c.Param("bin")
	if bin.Sanitize(digits) != digits || bin.Validate(digits) != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "bin must be 6-8 digits"})
		return
	}
	r, ok := h.store.Get(digits)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{})
		return
	}
	c.JSON(http.StatusOK, r)
}

// requestLogger logs one line per request, at a level chosen by status.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", size),
		}
		switch {
		case len(c.Errors) > 0:
			logger.Error(c.Errors.ByType(gin.ErrorTypePrivate).String(), fields...)
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
