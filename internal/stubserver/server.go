package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/stubserver/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config holds the stub service settings.
//
//   - Addr: listen address, e.g. ":5000".
//   - JWTSecret: HMAC key for access tokens (HS256).
//   - TokenTTL: access token lifetime.
//   - OTPTTL: how long an emailed code stays valid.
type Config struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
	OTPTTL    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:      ":5000",
		JWTSecret: "secretKey",
		TokenTTL:  24 * time.Hour,
		OTPTTL:    10 * time.Minute,
	}
}

type Server struct {
	config Config
	logger *zap.Logger
	users  *users.Service
	engine *gin.Engine
}

func New(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := users.NewService(users.NewInMemoryRepository(), users.NewOutbox(), users.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
		OTPTTL:    cfg.OTPTTL,
	}, logger.Named("users"))

	s := &Server{config: cfg, logger: logger, users: svc}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.logger), requestLogger(s.logger))

	api := r.Group("/api")
	api.GET("/health", s.health)

	a := api.Group("/auth")
	a.POST("/signup", s.signup)
	a.POST("/verify-otp", s.verifyOTP)
	a.POST("/login", s.login)
	a.POST("/forgot-password", s.forgotPassword)
	a.POST("/reset-password", s.resetPassword)

	u := api.Group("/user", s.requireAuth())
	u.GET("/profile", s.getProfile)
	u.PUT("/profile", s.updateProfile)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Outbox gives access to the codes the service has sent.
func (s *Server) Outbox() *users.Outbox {
	return s.users.Outbox()
}

// Run serves until ctx ends and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub account service listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
