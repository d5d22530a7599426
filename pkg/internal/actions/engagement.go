package actions

import (
	"context"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/models"
)

func (v *Actions) AddComment(ctx context.Context, actor *models.Actor, form CommentForm) CommentResult {
	if err := signedIn(actor); err != nil {
		return CommentResult{Outcome: fail("addComment", err)}
	}
	form.trim()
	if err := check(form, commentWording); err != nil {
		return CommentResult{Outcome: fail("addComment", err)}
	}
	comment, err := v.svc.AddComment(ctx, actor, form.PostID, form.Comment)
	if err != nil {
		return CommentResult{Outcome: fail("addComment", err)}
	}
	return CommentResult{Outcome: success(), Comment: &comment}
}

func (v *Actions) DeleteComment(ctx context.Context, actor *models.Actor, form DeleteCommentForm) Outcome {
	if err := signedIn(actor); err != nil {
		return fail("deleteComment", err)
	}
	if err := check(form, deleteCommentWording); err != nil {
		return fail("deleteComment", err)
	}
	if err := v.svc.DeleteComment(ctx, actor, form.CommentID, form.PostID); err != nil {
		return fail("deleteComment", err)
	}
	return success()
}

func (v *Actions) GetComments(ctx context.Context, postID string) CommentsResult {
	comments, err := v.svc.GetComments(ctx, postID)
	if err != nil {
		return CommentsResult{Outcome: fail("getComments", err)}
	}
	return CommentsResult{Outcome: success(), Comments: comments}
}

func (v *Actions) ToggleLike(ctx context.Context, actor *models.Actor, postID string) LikeResult {
	if err := signedIn(actor); err != nil {
		return LikeResult{Outcome: fail("toggleLike", err)}
	}
	liked, err := v.svc.ToggleLike(ctx, actor, postID)
	if err != nil {
		return LikeResult{Outcome: fail("toggleLike", err)}
	}
	return LikeResult{Outcome: success(), Liked: liked}
}

func (v *Actions) ToggleFollow(ctx context.Context, actor *models.Actor, authorID string) FollowResult {
	if err := signedIn(actor); err != nil {
		return FollowResult{Outcome: fail("toggleFollow", err)}
	}
	following, err := v.svc.ToggleFollow(ctx, actor, authorID)
	if err != nil {
		return FollowResult{Outcome: fail("toggleFollow", err)}
	}
	return FollowResult{Outcome: success(), Following: following}
}

func (v *Actions) ToggleGameFollow(ctx context.Context, actor *models.Actor, gameID string) FollowResult {
	if err := signedIn(actor); err != nil {
		return FollowResult{Outcome: fail("toggleGameFollow", err)}
	}
	following, err := v.svc.ToggleGameFollow(ctx, actor, gameID)
	if err != nil {
		return FollowResult{Outcome: fail("toggleGameFollow", err)}
	}
	return FollowResult{Outcome: success(), Following: following}
}

// IncrementViews needs no session; page views are counted for everyone.
func (v *Actions) IncrementViews(ctx context.Context, kind, id string) ViewsResult {
	views, err := v.svc.IncrementViews(ctx, kind, id)
	if err != nil {
		return ViewsResult{Outcome: fail("incrementViews", err)}
	}
	return ViewsResult{Outcome: success(), Views: views}
}
