package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"poolbnb/internal/app/validate"
	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
	domainuser "poolbnb/internal/domain/user"
)

var ErrInvalidInput = errors.New("review: invalid review details")

type Service struct {
	Pools   domainpool.Repository
	Reviews domainreview.Repository
}

type SubmitParams struct {
	AuthorID domainuser.ID
	PoolID   string
	Rating   int
	Comment  string
}

func (s *Service) Submit(ctx context.Context, params SubmitParams) (*domainreview.Review, error) {
	if !validate.Rating(params.Rating) || !validate.Length(params.Comment, 1, 1000) {
		return nil, ErrInvalidInput
	}
	p, err := s.Pools.ByID(ctx, domainpool.ID(params.PoolID))
	if err != nil {
		return nil, err
	}
	r, err := domainreview.Submit(domainreview.SubmitParams{
		ID:        domainreview.ID(uuid.NewString()),
		AuthorID:  params.AuthorID,
		PoolID:    p.ID,
		Rating:    params.Rating,
		Comment:   params.Comment,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Reviews.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByPool(ctx context.Context, poolID string) ([]*domainreview.Review, error) {
	if _, err := s.Pools.ByID(ctx, domainpool.ID(poolID)); err != nil {
		return nil, err
	}
	return s.Reviews.ListByPool(ctx, domainpool.ID(poolID))
}
