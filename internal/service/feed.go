package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
)

// Notifier pushes committed post mutations to live subscribers.
// Delivery is best-effort and must never fail the calling mutation.
type Notifier interface {
	Broadcast(event model.FeedEvent)
}

// AssetManager disposes of image assets that are no longer referenced.
type AssetManager interface {
	Remove(key string)
}

// Feed owns the post lifecycle: validation, ownership authorization,
// owner-list maintenance, asset cleanup scheduling and change notification.
type Feed struct {
	postStore model.PostStore
	userStore model.UserStore
	assets    AssetManager
	notifier  Notifier
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewFeed(
	postStore model.PostStore,
	userStore model.UserStore,
	assets AssetManager,
	notifier Notifier,
	logger *logger.Logger,
) *Feed {
	return &Feed{
		postStore: postStore,
		userStore: userStore,
		assets:    assets,
		notifier:  notifier,
		validate:  newValidator(),
		logger:    logger,
	}
}

func (s *Feed) CreatePost(ctx context.Context, input model.PostInput, ownerID uuid.UUID) (model.Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if err := asValidationError(s.validate.Struct(input)); err != nil {
		return model.Post{}, err
	}

	user, err := s.userStore.GetByID(ctx, ownerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.NewNotFoundError("user not found")
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	now := time.Now()
	post := model.Post{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	post, err = s.postStore.Create(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	if err := s.userStore.AppendPost(ctx, ownerID, post.ID); err != nil {
		return model.Post{}, fmt.Errorf("failed to append post to owner: %w", err)
	}

	post.Creator = &model.Creator{ID: user.ID, Name: user.Name}

	s.notifier.Broadcast(model.FeedEvent{Action: model.FeedActionCreate, Post: &post})
	s.logger.Info("Feed service: post created", "post_id", post.ID, "creator_id", ownerID)

	return post, nil
}

// ListPosts returns one page of the feed in descending creation order plus
// the unfiltered total count. Pages are 1-indexed; a page beyond the end
// yields no items and the same count.
func (s *Feed) ListPosts(ctx context.Context, page, pageSize int) (model.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total, err := s.postStore.Count(ctx)
	if err != nil {
		return model.PostPage{}, fmt.Errorf("failed to count posts: %w", err)
	}

	posts, err := s.postStore.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return model.PostPage{}, fmt.Errorf("failed to list posts: %w", err)
	}

	return model.PostPage{Posts: posts, TotalCount: total}, nil
}

func (s *Feed) GetPost(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.NewNotFoundError("could not find post")
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

// UpdatePost mutates a post owned by callerID. Existence is checked before
// ownership, ownership before input validation. Replacing the image
// reference schedules exactly one removal of the old asset.
func (s *Feed) UpdatePost(ctx context.Context, id uuid.UUID, input model.PostInput, callerID uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.NewNotFoundError("could not find post")
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.CreatorID != callerID {
		return model.Post{}, model.NewForbiddenError("not authorized to modify this post")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if err := asValidationError(s.validate.Struct(input)); err != nil {
		return model.Post{}, err
	}

	if input.ImageURL != post.ImageURL {
		s.assets.Remove(post.ImageURL)
	}

	post.Title = input.Title
	post.Content = input.Content
	post.ImageURL = input.ImageURL

	updated, err := s.postStore.Update(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	s.notifier.Broadcast(model.FeedEvent{Action: model.FeedActionUpdate, Post: &updated})
	s.logger.Info("Feed service: post updated", "post_id", post.ID, "caller_id", callerID)

	return updated, nil
}

// DeletePost removes a post owned by callerID, pulls its reference from the
// owner's post list and schedules removal of its image asset. The delete
// event carries only the post id.
func (s *Feed) DeletePost(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewNotFoundError("could not find post")
	}
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.CreatorID != callerID {
		return model.NewForbiddenError("not authorized to delete this post")
	}

	s.assets.Remove(post.ImageURL)

	if err := s.postStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("could not find post")
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if err := s.userStore.RemovePost(ctx, post.CreatorID, id); err != nil {
		return fmt.Errorf("failed to remove post from owner: %w", err)
	}

	s.notifier.Broadcast(model.FeedEvent{Action: model.FeedActionDelete, PostID: id})
	s.logger.Info("Feed service: post deleted", "post_id", id, "caller_id", callerID)

	return nil
}
