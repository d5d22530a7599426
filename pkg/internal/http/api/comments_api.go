package api

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *controller) listComments(c *fiber.Ctx) error {
	out := v.act.GetComments(c.UserContext(), c.Params("postId"))
	return exts.Reply(c, out.Code, out)
}

func (v *controller) addComment(c *fiber.Ctx) error {
	var data struct {
		Comment string `json:"comment" form:"comment"`
	}
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	out := v.act.AddComment(c.UserContext(), exts.GetActor(c), actions.CommentForm{
		PostID:  c.Params("postId"),
		Comment: data.Comment,
	})
	return exts.Reply(c, out.Code, out)
}

func (v *controller) deleteComment(c *fiber.Ctx) error {
	out := v.act.DeleteComment(c.UserContext(), exts.GetActor(c), actions.DeleteCommentForm{
		CommentID: c.Params("commentId"),
		PostID:    c.Params("postId"),
	})
	return exts.Reply(c, out.Code, out)
}
