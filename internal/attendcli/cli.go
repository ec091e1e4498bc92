package attendcli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bioattend/attendweb/internal/config"
	"github.com/bioattend/attendweb/internal/envutil"
	"github.com/bioattend/attendweb/internal/webapp"
)

var ErrUsage = errors.New("usage")

func Execute(args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "setup":
		return runSetup(args[1:])
	case "run":
		return runServe(args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: attendweb <setup|run> [...]", ErrUsage)
}

func runSetup(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	apiBaseURL := fs.String("api-base-url", "http://localhost:5000", "attendance backend origin")
	addr := fs.String("addr", ":3000", "listen address")
	secret := fs.String("session-secret", "", "session signing secret (generated when empty)")
	envPath := fs.String("env-file", ".env", "path to .env file")
	force := fs.Bool("force", false, "overwrite existing env file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sessionSecret := *secret
	if sessionSecret == "" {
		var err error
		sessionSecret, err = generateSecret()
		if err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
	}

	values := map[string]string{
		"ADDR":           *addr,
		"API_BASE_URL":   *apiBaseURL,
		"SESSION_SECRET": sessionSecret,
	}

	if err := envutil.WriteDotEnv(*envPath, values, *force); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *envPath)
	return nil
}

func runServe(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: run takes no arguments", ErrUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := webapp.Run(ctx, webapp.Config{
		Addr:          cfg.Addr,
		APIBaseURL:    cfg.APIBaseURL,
		APITimeout:    cfg.APITimeout,
		SessionSecret: cfg.SessionSecret,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
		MaxUploadSize: cfg.MaxUploadSize,
	}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
