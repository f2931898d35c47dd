package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"poolbnb/internal/domain/pool"
	"poolbnb/internal/domain/user"
)

var (
	ErrInvalidRating  = errors.New("review: rating must be between 1 and 5")
	ErrCommentMissing = errors.New("review: comment is required")
	ErrNotFound       = errors.New("review: not found")
)

type ID string

type Review struct {
	ID        ID
	AuthorID  user.ID
	PoolID    pool.ID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

type Repository interface {
	ListByPool(ctx context.Context, poolID pool.ID) ([]*Review, error)
	Save(ctx context.Context, r *Review) error
}

type SubmitParams struct {
	ID        ID
	AuthorID  user.ID
	PoolID    pool.ID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(params.Comment)
	if comment == "" {
		return nil, ErrCommentMissing
	}
	return &Review{
		ID:        params.ID,
		AuthorID:  params.AuthorID,
		PoolID:    params.PoolID,
		Rating:    params.Rating,
		Comment:   comment,
		CreatedAt: params.CreatedAt.UTC(),
	}, nil
}
