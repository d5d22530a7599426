package actions

import "git.solsynth.dev/hypernet/arcade/pkg/internal/models"

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Outcome is the discriminated part every result carries. Code is the HTTP
// status the transport answers with and never reaches the body.
type Outcome struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Code   int    `json:"-"`
}

func (v Outcome) OK() bool { return v.Status == StatusSuccess }

func success() Outcome {
	return Outcome{Status: StatusSuccess, Code: 200}
}

type CommentResult struct {
	Outcome
	Comment *models.Comment `json:"comment,omitempty"`
}

type LikeResult struct {
	Outcome
	Liked bool `json:"liked"`
}

type FollowResult struct {
	Outcome
	Following bool `json:"following"`
}

type ViewsResult struct {
	Outcome
	Views int64 `json:"views"`
}

type CountResult struct {
	Outcome
	UpdatedCount int `json:"updatedCount"`
}

type GameResult struct {
	Outcome
	Game *models.Game `json:"game,omitempty"`
}

type PostResult struct {
	Outcome
	Post *models.Post `json:"post,omitempty"`
}

type CommentsResult struct {
	Outcome
	Comments []models.CommentWithAuthor `json:"comments"`
}

type GamesResult struct {
	Outcome
	Games []models.Game `json:"games"`
}

type PostsResult struct {
	Outcome
	Posts []models.Post `json:"posts"`
}
