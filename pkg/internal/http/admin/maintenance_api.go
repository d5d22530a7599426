package admin

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (v *controller) initViews(c *fiber.Ctx) error {
	out := v.act.BackfillViews(c.UserContext(), c.Query("kind", models.KindPost))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) initFollowers(c *fiber.Ctx) error {
	out := v.act.BackfillFollowers(c.UserContext(), c.Query("kind", models.KindAuthor))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) fixKeys(c *fiber.Ctx) error {
	out := v.act.RepairMissingKeys(c.UserContext())
	if !out.OK() {
		return exts.Reply(c, fiber.StatusBadRequest, out)
	}
	return exts.Reply(c, out.Code, out)
}

func (v *controller) repairReferences(c *fiber.Ctx) error {
	out := v.act.RepairDanglingReferences(c.UserContext())
	return exts.Reply(c, out.Code, out)
}

func (v *controller) checkStore(c *fiber.Ctx) error {
	out := v.act.CheckStore(c.UserContext())
	return exts.Reply(c, out.Code, out)
}
