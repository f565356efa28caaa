package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/feedline/feedline/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, title, content, image_url, creator_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, title, content, image_url, creator_id, created_at, updated_at`

	var savedPost model.Post
	err := r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.ImageURL, post.CreatorID,
		post.CreatedAt, post.UpdatedAt,
	).Scan(
		&savedPost.ID, &savedPost.Title, &savedPost.Content, &savedPost.ImageURL,
		&savedPost.CreatorID, &savedPost.CreatedAt, &savedPost.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return savedPost, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.image_url, p.creator_id, p.created_at, p.updated_at, u.name
		FROM posts p
		JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1`

	var post model.Post
	var creatorName string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.ImageURL,
		&post.CreatorID, &post.CreatedAt, &post.UpdatedAt, &creatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	post.Creator = &model.Creator{ID: post.CreatorID, Name: creatorName}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.image_url, p.creator_id, p.created_at, p.updated_at, u.name
		FROM posts p
		JOIN users u ON u.id = p.creator_id
		ORDER BY p.created_at DESC
		OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		var creatorName string
		err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.ImageURL,
			&post.CreatorID, &post.CreatedAt, &post.UpdatedAt, &creatorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Creator = &model.Creator{ID: post.CreatorID, Name: creatorName}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *PostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	query := `UPDATE posts SET title = $2, content = $3, image_url = $4, updated_at = NOW()
			  WHERE id = $1
			  RETURNING id, title, content, image_url, creator_id, created_at, updated_at`

	var savedPost model.Post
	err := r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.ImageURL,
	).Scan(
		&savedPost.ID, &savedPost.Title, &savedPost.Content, &savedPost.ImageURL,
		&savedPost.CreatorID, &savedPost.CreatedAt, &savedPost.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}

	savedPost.Creator = post.Creator
	return savedPost, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
