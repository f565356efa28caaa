package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users. The owned-post list
// is maintained explicitly through AppendPost/RemovePost; nothing cascades.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	AppendPost(ctx context.Context, userID, postID uuid.UUID) error
	RemovePost(ctx context.Context, userID, postID uuid.UUID) error
}

// User represents a stored user account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	PostIDs      []uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
