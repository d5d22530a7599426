package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "abc123", SanitizeKey("abc-123"))
	assert.Equal(t, "draftsabc", SanitizeKey("drafts.abc"))
	assert.Equal(t, "A1b2", SanitizeKey("A_1~b 2"))
	assert.Equal(t, "", SanitizeKey("-._"))
	assert.Equal(t, "caf", SanitizeKey("café"))
}

func TestArrayKey_Deterministic(t *testing.T) {
	ids := []string{"9f1c-22aa", "user.github.42", "plain"}
	for _, id := range ids {
		assert.Equal(t, KeyPrefixComment+SanitizeKey(id), ArrayKey(KeyPrefixComment, id))
		assert.Equal(t, KeyPrefixLike+SanitizeKey(id), ArrayKey(KeyPrefixLike, id))
		assert.Equal(t, ArrayKey(KeyPrefixLike, id), ArrayKey(KeyPrefixLike, id))
	}
	assert.Equal(t, "comment_9f1c22aa", ArrayKey(KeyPrefixComment, "9f1c-22aa"))
}

func TestNewArrayReference(t *testing.T) {
	ref := NewArrayReference(KeyPrefixFollower, "a-1")
	assert.Equal(t, Reference{Key: "follower_a1", Type: "reference", Ref: "a-1"}, ref)
}
