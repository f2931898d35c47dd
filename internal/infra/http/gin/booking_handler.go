package ginserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"poolbnb/internal/app/dto"
	bookingsvc "poolbnb/internal/app/services/booking"
	domainbooking "poolbnb/internal/domain/booking"
)

type BookingHTTP interface {
	CheckAvailability(c *gin.Context)
	Book(c *gin.Context)
	Cancel(c *gin.Context)
}

type BookingHandler struct {
	Service *bookingsvc.Service
	Logger  *slog.Logger
}

type availabilityRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// CheckAvailability reports whether the requested dates fit inside a
// single published window. It does not reserve anything.
func (h BookingHandler) CheckAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}
	available, err := h.Service.CheckAvailability(c.Request.Context(), bookingsvc.AvailabilityQuery{
		PoolID:    c.Param("id"),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

type bookRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Guests    int    `json:"guests" binding:"required"`
}

func (h BookingHandler) Book(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}
	b, err := h.Service.Create(c.Request.Context(), bookingsvc.CreateParams{
		PoolID:    c.Param("id"),
		GuestID:   p.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Guests:    req.Guests,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking confirmed", "booking": dto.NewBooking(b)})
}

func (h BookingHandler) Cancel(c *gin.Context) {
	p, ok := requireSession(c)
	if !ok {
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), domainbooking.ID(c.Param("id")), p.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": dto.NewBooking(b)})
}

var _ BookingHTTP = BookingHandler{}
