package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskdeck/internal/kanban/delivery"
	"taskdeck/internal/kanban/usecase"
	"taskdeck/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	boardHandler  *delivery.BoardHandler
	columnHandler *delivery.ColumnHandler
	cardHandler   *delivery.CardHandler
	labelHandler  *delivery.LabelHandler
	config        *config.Config
	log           *zap.Logger
}

func NewHandler(boardUc usecase.BoardUsecase, columnUc usecase.ColumnUsecase, cardUc usecase.CardUsecase, labelUc usecase.LabelUsecase, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		boardHandler:  delivery.NewBoardHandler(boardUc),
		columnHandler: delivery.NewColumnHandler(columnUc),
		cardHandler:   delivery.NewCardHandler(cardUc),
		labelHandler:  delivery.NewLabelHandler(labelUc),
		config:        cfg,
		log:           log,
	}
}

// Router builds the gin engine with middleware and every route.
func (h *Handler) Router() *gin.Engine {
	switch h.config.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(h.config.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.log), cors(h.config.CORSAllowOrigin))

	// Setup routes
	SetupRoutes(r, h.boardHandler, h.columnHandler, h.cardHandler, h.labelHandler)
	return r
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		h.log.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// cors allows allowOrigin, or echoes the request origin when it is empty.
func cors(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := allowOrigin
		if origin == "" {
			origin = c.Request.Header.Get("Origin")
		}
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
