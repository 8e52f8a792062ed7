package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/auth-service"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type appConfig struct {
	Address   string            `koanf:"address"`
	AssetsDir string            `koanf:"assets_dir"`
	Auth      auth.SimpleConfig `koanf:"auth"`
}

// loadConfig reads config.yaml when present and lets AUTH_ prefixed
// environment variables override it (AUTH_AUTH__SIGNING_KEY maps to
// auth.signing_key), matching the env-first contract of the service's
// deployments.
func loadConfig(path string) (*appConfig, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load config file")
		}
	}

	if err := k.Load(env.Provider("AUTH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "AUTH_")), "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load environment config")
	}

	cfg := &appConfig{
		Address:   "0.0.0.0:3000",
		AssetsDir: "./assets",
		Auth: auth.SimpleConfig{
			TokenExpiration: 1,
			CookieName:      auth.DefaultCookieName,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to unmarshal config")
	}

	if cfg.Auth.SigningKey == "" {
		return nil, errors.New("auth.signing_key must be set", errors.CategoryValidation)
	}

	return cfg, nil
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("auth-service"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := loadConfig("config.yaml")
	if err != nil {
		lgr.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fmt.Println(print.MaybeHighlightJSON(redacted(cfg)))

	users := auth.NewMemoryUserStore()
	challenges := auth.NewMemoryTwoFACodeStore()
	banned := auth.NewMemoryBannedTokenStore()

	tokens := auth.NewTokenService(&cfg.Auth, banned, lgr.GetLogger("tokens"))

	auther := auth.NewAuthenticator(users, challenges, tokens, &cfg.Auth).
		WithLogger(lgr.GetLogger("auth")).
		WithCodeSender(auth.NewLogCodeSender(lgr.GetLogger("2fa")))

	app := fiber.New(fiber.Config{
		AppName: "auth-service",
	})

	auth.NewHTTPController(auther, &cfg.Auth).
		WithLogger(lgr.GetLogger("http")).
		RegisterRoutes(app)

	app.Static("/", cfg.AssetsDir)

	go func() {
		lgr.Info("listening", "address", cfg.Address)
		if err := app.Listen(cfg.Address); err != nil {
			lgr.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sig := WaitExitSignal()
	lgr.Info("shutting down", "signal", sig.String())

	if err := app.Shutdown(); err != nil {
		lgr.Error("shutdown error", "error", err)
	}
}

// redacted copies the config with the signing key masked for the
// startup dump.
func redacted(cfg *appConfig) appConfig {
	out := *cfg
	if out.Auth.SigningKey != "" {
		out.Auth.SigningKey = "********"
	}
	return out
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
