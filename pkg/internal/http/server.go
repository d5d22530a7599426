package http

import (
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/admin"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

type Config struct {
	SessionSecret string
	CookieName    string
	AdminToken    string
	Origins       string
	PrintRoutes   bool
}

// ConfigFromViper reads the server settings from the loaded configuration.
func ConfigFromViper() Config {
	return Config{
		SessionSecret: viper.GetString("security.session_secret"),
		CookieName:    viper.GetString("security.cookie_name"),
		AdminToken:    viper.GetString("security.admin_token"),
		Origins:       viper.GetString("security.allowed_origins"),
		PrintRoutes:   viper.GetBool("debug.print_routes"),
	}
}

func NewServer(act *actions.Actions, cfg Config) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Arcade",
		AppName:               "Arcade",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             1 * 1024 * 1024,
		EnablePrintRoutes:     cfg.PrintRoutes,
	})

	origins := cfg.Origins
	if len(origins) == 0 {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodPatch,
		}, ","),
	}))

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	app.Use(exts.SessionMiddleware(exts.SessionConfig{
		Secret:     []byte(cfg.SessionSecret),
		CookieName: cfg.CookieName,
		Resolve:    act.Service().ResolveActor,
	}))

	admin.MapControllers(app, "/admin", act, cfg.AdminToken)
	api.MapControllers(app, "/api", act)

	return &App{app}
}

// Fiber exposes the underlying app, mostly for app.Test.
func (v *App) Fiber() *fiber.App {
	return v.app
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
