package api

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (v *controller) listGames(c *fiber.Ctx) error {
	out := v.act.ListGames(c.UserContext(), actions.SearchForm{Query: c.Query("query")})
	return exts.Reply(c, out.Code, out)
}

func (v *controller) listUserGames(c *fiber.Ctx) error {
	out := v.act.ListUserGames(c.UserContext(), exts.GetActor(c))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) getGame(c *fiber.Ctx) error {
	out := v.act.GetGame(c.UserContext(), c.Params("gameId"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) createGame(c *fiber.Ctx) error {
	var data actions.GameForm
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}
	out := v.act.CreateGame(c.UserContext(), exts.GetActor(c), data)
	return exts.Reply(c, out.Code, out)
}

func (v *controller) toggleGameFollow(c *fiber.Ctx) error {
	out := v.act.ToggleGameFollow(c.UserContext(), exts.GetActor(c), c.Params("gameId"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) incrementGameViews(c *fiber.Ctx) error {
	out := v.act.IncrementViews(c.UserContext(), models.KindGame, c.Params("gameId"))
	return exts.Reply(c, out.Code, out)
}
