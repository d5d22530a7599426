package admin

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

type controller struct {
	act *actions.Actions
}

func MapControllers(app *fiber.App, baseURL string, act *actions.Actions, token string) {
	ctl := &controller{act: act}

	admin := app.Group(baseURL, exts.RequireAdminToken(token))
	{
		admin.Post("/views/init", ctl.initViews)
		admin.Post("/followers/init", ctl.initFollowers)
		admin.Post("/fix-keys", ctl.fixKeys)
		admin.Post("/repair-references", ctl.repairReferences)
		admin.Get("/store-check", ctl.checkStore)
	}
}
