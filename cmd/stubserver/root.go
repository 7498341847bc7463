package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/stubserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootConfig struct {
	server    stubserver.Config
	logFormat string
}

// NewRootCmd creates the stubserver command.
func NewRootCmd() *cobra.Command {
	cfg := &rootConfig{server: stubserver.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "stubserver",
		Short: "Run a local in-memory account service",
		Long: `stubserver serves the signup, OTP, login, password reset and
profile endpoints under /api. One-time codes are written to the log
instead of being mailed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.server.Addr, "addr", cfg.server.Addr, "listen address")
	f.StringVar(&cfg.server.JWTSecret, "jwt-secret", cfg.server.JWTSecret, "HMAC key for access tokens")
	f.DurationVar(&cfg.server.TokenTTL, "token-ttl", cfg.server.TokenTTL, "access token lifetime")
	f.DurationVar(&cfg.server.OTPTTL, "otp-ttl", cfg.server.OTPTTL, "one-time code lifetime")
	f.StringVar(&cfg.logFormat, "log-format", "json", "log format: text or json")

	return cmd
}

func run(ctx context.Context, cfg *rootConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.SetupZap(cfg.logFormat, os.Stdout)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("addr", cfg.server.Addr), zap.Duration("token_ttl", cfg.server.TokenTTL))
	return stubserver.New(cfg.server, logger).Run(ctx)
}
