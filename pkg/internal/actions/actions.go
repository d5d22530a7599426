package actions

import (
	"context"
	"errors"
	"net/http"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/services"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/rs/zerolog/log"
)

// Actions is the boundary every caller goes through. No method returns an
// error; failures come back as an ERROR outcome.
type Actions struct {
	svc *services.Service
}

func New(svc *services.Service) *Actions {
	return &Actions{svc: svc}
}

func (v *Actions) Service() *services.Service {
	return v.svc
}

// fail turns an error into an ERROR outcome with its transport status.
func fail(op string, err error) Outcome {
	out := Outcome{Status: StatusError}
	var invalid *ValidationError
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		out.Error, out.Code = "Not signed in", http.StatusUnauthorized
	case errors.Is(err, services.ErrSelfFollow):
		out.Error, out.Code = "You cannot follow yourself", http.StatusBadRequest
	case errors.As(err, &invalid):
		out.Error, out.Code = invalid.Message, http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrUnsupportedKind):
		out.Error, out.Code = err.Error(), http.StatusBadRequest
	case errors.Is(err, services.ErrNotPermitted):
		out.Error, out.Code = err.Error(), http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		out.Error, out.Code = err.Error(), http.StatusNotFound
	case errors.Is(err, services.ErrContention):
		out.Error, out.Code = err.Error(), http.StatusConflict
	default:
		out.Error, out.Code = err.Error(), http.StatusInternalServerError
	}

	if out.Code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("action", op).Msg("An error occurred when performing action...")
	} else {
		log.Debug().Err(err).Str("action", op).Msg("Action rejected")
	}
	return out
}

func signedIn(actor *models.Actor) error {
	if actor == nil || len(actor.AuthorID) == 0 {
		return services.ErrNotSignedIn
	}
	return nil
}

func (v *Actions) CreateGame(ctx context.Context, actor *models.Actor, form GameForm) GameResult {
	if err := signedIn(actor); err != nil {
		return GameResult{Outcome: fail("createGame", err)}
	}
	form.trim()
	if err := check(form, gameWording); err != nil {
		return GameResult{Outcome: fail("createGame", err)}
	}
	game, err := v.svc.CreateGame(ctx, actor, services.GameInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Image:       form.Image,
		GameURL:     form.GameURL,
	})
	if err != nil {
		return GameResult{Outcome: fail("createGame", err)}
	}
	return GameResult{Outcome: success(), Game: &game}
}

func (v *Actions) CreatePost(ctx context.Context, actor *models.Actor, form PostForm) PostResult {
	if err := signedIn(actor); err != nil {
		return PostResult{Outcome: fail("createPost", err)}
	}
	form.trim()
	if err := check(form, postWording); err != nil {
		return PostResult{Outcome: fail("createPost", err)}
	}
	post, err := v.svc.CreatePost(ctx, actor, services.PostInput{
		Title:   form.Title,
		Content: form.Content,
		Image:   form.Image,
		GameID:  form.Game,
	})
	if err != nil {
		return PostResult{Outcome: fail("createPost", err)}
	}
	return PostResult{Outcome: success(), Post: &post}
}

func (v *Actions) GetGame(ctx context.Context, id string) GameResult {
	game, err := v.svc.GetGame(ctx, id)
	if err != nil {
		return GameResult{Outcome: fail("getGame", err)}
	}
	return GameResult{Outcome: success(), Game: &game}
}

func (v *Actions) GetPost(ctx context.Context, id string) PostResult {
	post, err := v.svc.GetPost(ctx, id)
	if err != nil {
		return PostResult{Outcome: fail("getPost", err)}
	}
	return PostResult{Outcome: success(), Post: &post}
}

func (v *Actions) ListGames(ctx context.Context, form SearchForm) GamesResult {
	if err := check(form, searchWording); err != nil {
		return GamesResult{Outcome: fail("listGames", err)}
	}
	games, err := v.svc.ListGames(ctx, form.Query)
	if err != nil {
		return GamesResult{Outcome: fail("listGames", err)}
	}
	return GamesResult{Outcome: success(), Games: games}
}

func (v *Actions) ListUserGames(ctx context.Context, actor *models.Actor) GamesResult {
	if err := signedIn(actor); err != nil {
		return GamesResult{Outcome: fail("listUserGames", err)}
	}
	games, err := v.svc.ListUserGames(ctx, actor)
	if err != nil {
		return GamesResult{Outcome: fail("listUserGames", err)}
	}
	return GamesResult{Outcome: success(), Games: games}
}

func (v *Actions) ListPosts(ctx context.Context, gameID string) PostsResult {
	posts, err := v.svc.ListPosts(ctx, gameID)
	if err != nil {
		return PostsResult{Outcome: fail("listPosts", err)}
	}
	return PostsResult{Outcome: success(), Posts: posts}
}
