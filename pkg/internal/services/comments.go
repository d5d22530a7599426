package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/events"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const MaxCommentLength = 1000

// AddComment creates the comment document and then appends its reference to
// the post. When the append fails the comment is deleted again.
func (v *Service) AddComment(ctx context.Context, actor *models.Actor, postID, text string) (models.Comment, error) {
	var comment models.Comment
	if actor == nil {
		return comment, ErrNotSignedIn
	}
	text = strings.TrimSpace(text)
	if len(postID) == 0 {
		return comment, fmt.Errorf("%w: missing post id", ErrInvalidInput)
	}
	if length := utf8.RuneCountInString(text); length == 0 || length > MaxCommentLength {
		return comment, fmt.Errorf("%w: comment must be 1 to %d characters", ErrInvalidInput, MaxCommentLength)
	}

	if post, err := v.store.Get(ctx, postID); err != nil {
		return comment, err
	} else if post.Kind() != models.KindPost {
		return comment, fmt.Errorf("%w: %s is not a post", store.ErrNotFound, postID)
	}

	doc, err := v.store.Create(ctx, store.Document{
		store.FieldType: models.KindComment,
		"comment":       text,
		"createdAt":     store.FormatTime(v.now()),
		"author":        models.NewReference(actor.AuthorID),
		"post":          models.NewReference(postID),
	})
	if err != nil {
		return comment, fmt.Errorf("unable to create comment: %w", err)
	}

	_, err = v.store.Patch(ctx, postID, store.NewPatch().
		SetFieldIfMissing(models.FieldComments, []any{}).
		AppendItems(models.FieldComments, models.NewArrayReference(models.KeyPrefixComment, doc.ID())))
	if err != nil {
		if cerr := v.store.Delete(ctx, doc.ID()); cerr != nil {
			log.Error().Err(cerr).Str("comment", doc.ID()).Msg("An error occurred when cleaning up unlinked comment...")
		}
		return comment, fmt.Errorf("unable to link comment to post: %w", err)
	}

	v.publish(events.Engagement{
		Topic:     events.TopicCommentAdded,
		Kind:      models.KindPost,
		SubjectID: postID,
		ActorID:   actor.AuthorID,
		TargetID:  doc.ID(),
		Active:    true,
	})

	err = doc.Decode(&comment)
	return comment, err
}

// DeleteComment deletes the comment and unlinks it from the post. A failed
// unlink after the delete yields ErrOrphanedReference; the leftover entry is
// removed by RepairDanglingReferences.
func (v *Service) DeleteComment(ctx context.Context, actor *models.Actor, commentID, postID string) error {
	if actor == nil {
		return ErrNotSignedIn
	}
	if len(commentID) == 0 || len(postID) == 0 {
		return fmt.Errorf("%w: comment id and post id are required", ErrInvalidInput)
	}

	doc, err := v.store.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if doc.Kind() != models.KindComment {
		return fmt.Errorf("%w: %s is not a comment", store.ErrNotFound, commentID)
	}
	var comment models.Comment
	if err := doc.Decode(&comment); err != nil {
		return err
	}
	if len(comment.Post.Ref) > 0 && comment.Post.Ref != postID {
		return fmt.Errorf("%w: comment %s does not belong to post %s", ErrInvalidInput, commentID, postID)
	}

	var post store.Document
	if found, err := v.store.Get(ctx, postID); err == nil {
		post = found
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if !v.canDeleteComment(actor, comment, post) {
		return fmt.Errorf("%w: only the comment author or the post author may delete this comment", ErrNotPermitted)
	}

	if err := v.store.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("unable to delete comment: %w", err)
	}

	if post != nil {
		_, err := v.store.Patch(ctx, postID, store.NewPatch().UnsetRef(models.FieldComments, commentID))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("post", postID).Str("comment", commentID).Msg("An error occurred when unlinking deleted comment...")
			return fmt.Errorf("%w: %v", ErrOrphanedReference, err)
		}
	}

	v.publish(events.Engagement{
		Topic:     events.TopicCommentDeleted,
		Kind:      models.KindPost,
		SubjectID: postID,
		ActorID:   actor.AuthorID,
		TargetID:  commentID,
	})
	return nil
}

func (v *Service) canDeleteComment(actor *models.Actor, comment models.Comment, post store.Document) bool {
	if v.policy == DeletePolicyAny {
		return true
	}
	if comment.Author.Ref == actor.AuthorID {
		return true
	}
	if post == nil {
		return false
	}
	owner, _ := post["author"].(map[string]any)
	return owner != nil && owner[store.FieldRef] == actor.AuthorID
}

// GetComments lists the comments of a post, newest first, with their authors.
func (v *Service) GetComments(ctx context.Context, postID string) ([]models.CommentWithAuthor, error) {
	if len(postID) == 0 {
		return nil, fmt.Errorf("%w: missing post id", ErrInvalidInput)
	}

	docs, err := v.store.Fetch(ctx, store.Query{
		Kind:    models.KindComment,
		Filters: []store.Filter{store.RefEq("post", postID)},
		Newest:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch comments: %w", err)
	}

	out := make([]models.CommentWithAuthor, 0, len(docs))
	for _, doc := range docs {
		var item models.CommentWithAuthor
		if err := doc.Decode(&item.Comment); err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	authorIDs := lo.Uniq(lo.FilterMap(out, func(item models.CommentWithAuthor, _ int) (string, bool) {
		return item.Author.Ref, len(item.Author.Ref) > 0
	}))
	if len(authorIDs) == 0 {
		return out, nil
	}
	authors, err := v.store.Fetch(ctx, store.Query{Kind: models.KindAuthor, IDs: authorIDs})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch comment authors: %w", err)
	}
	byID := make(map[string]*models.Author, len(authors))
	for _, doc := range authors {
		var author models.Author
		if err := doc.Decode(&author); err != nil {
			return nil, err
		}
		byID[author.ID] = &author
	}
	for idx := range out {
		out[idx].AuthorInfo = byID[out[idx].Author.Ref]
	}
	return out, nil
}
