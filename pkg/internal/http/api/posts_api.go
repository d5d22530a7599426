package api

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (v *controller) listPosts(c *fiber.Ctx) error {
	out := v.act.ListPosts(c.UserContext(), c.Query("game"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) getPost(c *fiber.Ctx) error {
	out := v.act.GetPost(c.UserContext(), c.Params("postId"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) createPost(c *fiber.Ctx) error {
	var data actions.PostForm
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}
	out := v.act.CreatePost(c.UserContext(), exts.GetActor(c), data)
	return exts.Reply(c, out.Code, out)
}

// incrementPostViews is called once per rendering of the post page.
func (v *controller) incrementPostViews(c *fiber.Ctx) error {
	out := v.act.IncrementViews(c.UserContext(), models.KindPost, c.Params("postId"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) toggleLike(c *fiber.Ctx) error {
	out := v.act.ToggleLike(c.UserContext(), exts.GetActor(c), c.Params("postId"))
	return exts.Reply(c, out.Code, out)
}
