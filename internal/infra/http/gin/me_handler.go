package ginserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"poolbnb/internal/app/dto"
	authsvc "poolbnb/internal/app/services/auth"
	bookingsvc "poolbnb/internal/app/services/booking"
	poolsvc "poolbnb/internal/app/services/pool"
)

type MeHTTP interface {
	Me(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ListBookings(c *gin.Context)
	ListListings(c *gin.Context)
}

type MeHandler struct {
	Auth     *authsvc.Service
	Bookings *bookingsvc.Service
	Pools    *poolsvc.Service
	Logger   *slog.Logger
}

func (h MeHandler) Me(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.UserProfile{
		ID:        string(p.ID),
		FullName:  p.FullName,
		Email:     p.Email,
		Bio:       p.Bio,
		Avatar:    p.Avatar,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

type profileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

func (h MeHandler) UpdateProfile(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}
	u, err := h.Auth.UpdateProfile(c.Request.Context(), p.ID, authsvc.ProfileUpdateParams{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserProfile(u))
}

func (h MeHandler) ListBookings(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	bookings, err := h.Bookings.ListByGuest(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingList(bookings))
}

func (h MeHandler) ListListings(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	pools, err := h.Pools.ByHost(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolList(pools))
}

var _ MeHTTP = MeHandler{}
