package api

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"github.com/gofiber/fiber/v2"
)

type controller struct {
	act *actions.Actions
}

func MapControllers(app *fiber.App, baseURL string, act *actions.Actions) {
	ctl := &controller{act: act}

	api := app.Group(baseURL)
	{
		api.Get("/users/me", ctl.getCurrentUser)
		api.Post("/authors/:authorId/follow", ctl.toggleFollow)

		games := api.Group("/games")
		{
			games.Get("/", ctl.listGames)
			games.Post("/", ctl.createGame)
			games.Get("/me", ctl.listUserGames)
			games.Get("/:gameId", ctl.getGame)
			games.Post("/:gameId/follow", ctl.toggleGameFollow)
			games.Post("/:gameId/views", ctl.incrementGameViews)
		}

		posts := api.Group("/posts")
		{
			posts.Get("/", ctl.listPosts)
			posts.Post("/", ctl.createPost)
			posts.Get("/:postId", ctl.getPost)
			posts.Post("/:postId/views", ctl.incrementPostViews)
			posts.Post("/:postId/like", ctl.toggleLike)
			posts.Get("/:postId/comments", ctl.listComments)
			posts.Post("/:postId/comments", ctl.addComment)
			posts.Delete("/:postId/comments/:commentId", ctl.deleteComment)
		}
	}
}
