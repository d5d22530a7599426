package models

import "time"

// BaseDocument carries the system fields every stored document has.
type BaseDocument struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type"`
	Rev       string    `json:"_rev,omitempty"`
	CreatedAt time.Time `json:"_createdAt"`
	UpdatedAt time.Time `json:"_updatedAt"`
}

type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

type Author struct {
	BaseDocument

	AccountID string      `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Image     string      `json:"image"`
	Bio       string      `json:"bio"`
	Followers []Reference `json:"followers"`
}

type Game struct {
	BaseDocument

	Title       string      `json:"title"`
	Slug        Slug        `json:"slug"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	GameURL     string      `json:"gameUrl"`
	Views       *int64      `json:"views,omitempty"`
	Followers   []Reference `json:"followers"`
	Author      Reference   `json:"author"`
}

type Post struct {
	BaseDocument

	Title    string      `json:"title"`
	Slug     Slug        `json:"slug"`
	Content  string      `json:"content"`
	Image    string      `json:"image,omitempty"`
	Language string      `json:"language,omitempty"`
	Views    *int64      `json:"views,omitempty"`
	Comments []Reference `json:"comments"`
	Likes    []Reference `json:"likes"`
	Author   Reference   `json:"author"`
	Game     Reference   `json:"game"`
	PostedAt time.Time   `json:"createdAt"`
}

type Comment struct {
	BaseDocument

	Comment  string    `json:"comment"`
	PostedAt time.Time `json:"createdAt"`
	Author   Reference `json:"author"`
	Post     Reference `json:"post"`
}

// CommentWithAuthor is the comment listing shape, with the author expanded.
type CommentWithAuthor struct {
	Comment
	AuthorInfo *Author `json:"authorInfo,omitempty"`
}

func NewSlug(current string) Slug {
	return Slug{Type: "slug", Current: current}
}
