package api

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *controller) getCurrentUser(c *fiber.Ctx) error {
	actor := exts.GetActor(c)
	if actor == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}
	return c.JSON(actor)
}

func (v *controller) toggleFollow(c *fiber.Ctx) error {
	out := v.act.ToggleFollow(c.UserContext(), exts.GetActor(c), c.Params("authorId"))
	return exts.Reply(c, out.Code, out)
}
