package ginserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"poolbnb/internal/app/dto"
	reviewsvc "poolbnb/internal/app/services/review"
)

type ReviewHTTP interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
}

type ReviewHandler struct {
	Service *reviewsvc.Service
	Logger  *slog.Logger
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

func (h ReviewHandler) Submit(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}
	r, err := h.Service.Submit(c.Request.Context(), reviewsvc.SubmitParams{
		AuthorID: p.ID,
		PoolID:   c.Param("id"),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": dto.NewReview(r)})
}

func (h ReviewHandler) List(c *gin.Context) {
	reviews, err := h.Service.ListByPool(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewList(reviews))
}

var _ ReviewHTTP = ReviewHandler{}
