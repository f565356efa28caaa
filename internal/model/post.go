package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context, offset, limit int) ([]Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Post represents a feed post. CreatorID is immutable after creation.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatorID uuid.UUID `json:"creatorId"`
	Creator   *Creator  `json:"creator,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Creator is the minimal owner projection attached to post reads and
// create events.
type Creator struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PostInput carries user-supplied post fields for create and update.
type PostInput struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

// PostPage is one page of the feed plus the unfiltered total.
type PostPage struct {
	Posts      []Post
	TotalCount int64
}
