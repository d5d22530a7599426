package models

const (
	KindAuthor  = "author"
	KindGame    = "game"
	KindPost    = "post"
	KindComment = "comment"
)

// Reference-array fields maintained by the engagement layer.
const (
	FieldComments  = "comments"
	FieldLikes     = "likes"
	FieldFollowers = "followers"
	FieldViews     = "views"
)

// Key prefixes of the array entries, one per reference-array field.
const (
	KeyPrefixComment  = "comment_"
	KeyPrefixLike     = "like_"
	KeyPrefixFollower = "follower_"
)

var ArrayKeyPrefixes = map[string]string{
	FieldComments:  KeyPrefixComment,
	FieldLikes:     KeyPrefixLike,
	FieldFollowers: KeyPrefixFollower,
}

var GameCategories = []string{
	"Action",
	"Adventure",
	"Puzzle",
	"Strategy",
	"RPG",
	"Simulation",
	"Sports",
	"Racing",
	"Arcade",
	"Other",
}
