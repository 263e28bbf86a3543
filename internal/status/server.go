package status

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bami/internal/voice"
)

// Server exposes a read-only HTTP surface: liveness plus a snapshot of the
// active voice sessions and their queues.
type Server struct {
	registry *voice.Registry
	log      *zap.Logger
	srv      *http.Server
}

// New builds the status server for the given port
func New(registry *voice.Registry, port string, production bool, log *zap.Logger) *Server {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{registry: registry, log: log}

	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/queues", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"queues": s.registry.Snapshot()})
		})
	}

	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}
	return s
}

// Run serves until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	s.log.Info("status server listening", zap.String("addr", s.srv.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// ginLogger adapts request logging onto zap
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
