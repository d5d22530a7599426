package actions

import (
	"errors"
	"reflect"
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/services"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError carries the first failed rule of a form, worded for the
// person who filled it in.
type ValidationError struct {
	Message string
}

func (v *ValidationError) Error() string { return v.Message }
func (v *ValidationError) Unwrap() error { return services.ErrInvalidInput }

// messages maps "field.tag" to the message shown for that failure.
type messages map[string]string

func check(form any, wording messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return err
	}
	first := failures[0]
	if msg, ok := wording[first.Field()+"."+first.Tag()]; ok {
		return &ValidationError{Message: msg}
	}
	return &ValidationError{Message: first.Error()}
}

type GameForm struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" form:"description" validate:"required,min=20,max=500"`
	Category    string `json:"category" form:"category" validate:"required,min=3,max=20,oneof=Action Adventure Puzzle Strategy RPG Simulation Sports Racing Arcade Other"`
	Image       string `json:"image" form:"image" validate:"required,url"`
	GameURL     string `json:"gameUrl" form:"gameUrl" validate:"required,url"`
}

var gameWording = messages{
	"title.required":       "Title is required",
	"title.min":            "Title must be at least 3 characters",
	"title.max":            "Title must be less than 100 characters",
	"description.required": "Description is required",
	"description.min":      "Description must be at least 20 characters",
	"description.max":      "Description must be less than 500 characters",
	"category.required":    "Category is required",
	"category.min":         "Category must be at least 3 characters",
	"category.max":         "Category must be less than 20 characters",
	"category.oneof":       "Please select a valid category",
	"image.required":       "Image is required",
	"image.url":            "Please provide a valid image URL",
	"gameUrl.required":     "Game URL is required",
	"gameUrl.url":          "Please provide a valid game URL",
}

func (v *GameForm) trim() {
	v.Title = strings.TrimSpace(v.Title)
	v.Description = strings.TrimSpace(v.Description)
	v.Category = strings.TrimSpace(v.Category)
	v.Image = strings.TrimSpace(v.Image)
	v.GameURL = strings.TrimSpace(v.GameURL)
}

type PostForm struct {
	Title   string `json:"title" form:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" form:"content" validate:"required,min=20,max=5000"`
	Game    string `json:"game" form:"game" validate:"required"`
	Image   string `json:"image" form:"image" validate:"omitempty,url"`
}

var postWording = messages{
	"title.required":   "Title is required",
	"title.min":        "Title must be at least 3 characters",
	"title.max":        "Title must be less than 100 characters",
	"content.required": "Content is required",
	"content.min":      "Content must be at least 20 characters",
	"content.max":      "Content must be less than 5000 characters",
	"game.required":    "Please select a game",
	"image.url":        "Please provide a valid image URL",
}

func (v *PostForm) trim() {
	v.Title = strings.TrimSpace(v.Title)
	v.Content = strings.TrimSpace(v.Content)
	v.Game = strings.TrimSpace(v.Game)
	v.Image = strings.TrimSpace(v.Image)
}

type CommentForm struct {
	PostID  string `json:"postId" form:"postId" validate:"required"`
	Comment string `json:"comment" form:"comment" validate:"required,max=1000"`
}

var commentWording = messages{
	"postId.required":  "Post ID is required",
	"comment.required": "Comment cannot be empty",
	"comment.max":      "Comment must be less than 1000 characters",
}

func (v *CommentForm) trim() {
	v.PostID = strings.TrimSpace(v.PostID)
	v.Comment = strings.TrimSpace(v.Comment)
}

type DeleteCommentForm struct {
	CommentID string `json:"commentId" form:"commentId" validate:"required"`
	PostID    string `json:"postId" form:"postId" validate:"required"`
}

var deleteCommentWording = messages{
	"commentId.required": "Comment ID is required",
	"postId.required":    "Post ID is required",
}

type SearchForm struct {
	Query string `json:"query" query:"query" validate:"max=100"`
}

var searchWording = messages{
	"query.max": "Search query too long",
}
