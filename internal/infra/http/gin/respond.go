package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "poolbnb/internal/app/services/auth"
	bookingsvc "poolbnb/internal/app/services/booking"
	poolsvc "poolbnb/internal/app/services/pool"
	reviewsvc "poolbnb/internal/app/services/review"
	domainauth "poolbnb/internal/domain/auth"
	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
	domainuser "poolbnb/internal/domain/user"
)

// respondError converts a service error into the uniform JSON envelope.
// Anything unrecognized becomes a generic 500 so no internals leak.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, domainauth.ErrSessionNotFound), errors.Is(err, domainauth.ErrTokenRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	case errors.Is(err, domainbooking.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, domainpool.ErrNotFound), errors.Is(err, domainschedule.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Pool not found"})
	case errors.Is(err, domainbooking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
	case errors.Is(err, domainuser.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, domainuser.ErrEmailAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
	case errors.Is(err, bookingsvc.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{"message": "Pool is not available for the selected dates"})
	case errors.Is(err, bookingsvc.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"message": "Pool was booked by another request"})
	case isInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
	default:
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func isInvalidInput(err error) bool {
	return errors.Is(err, authsvc.ErrInvalidInput) ||
		errors.Is(err, bookingsvc.ErrInvalidInput) ||
		errors.Is(err, poolsvc.ErrInvalidInput) ||
		errors.Is(err, poolsvc.ErrInvalidCriteria) ||
		errors.Is(err, reviewsvc.ErrInvalidInput) ||
		errors.Is(err, daterange.ErrInvalidRange) ||
		errors.Is(err, domainbooking.ErrInvalidGuests) ||
		errors.Is(err, domainbooking.ErrInvalidState) ||
		errors.Is(err, domainreview.ErrInvalidRating) ||
		errors.Is(err, domainreview.ErrCommentMissing) ||
		errors.Is(err, domainuser.ErrNameRequired) ||
		errors.Is(err, domainuser.ErrNameTooLong) ||
		errors.Is(err, domainuser.ErrBioTooLong) ||
		errors.Is(err, domainuser.ErrInvalidAvatarURL) ||
		errors.Is(err, domainpool.ErrInvalidPrice) ||
		errors.Is(err, domainpool.ErrAmenitiesEmpty) ||
		errors.Is(err, domainpool.ErrPhotosEmpty) ||
		errors.Is(err, domainpool.ErrInvalidPhotoURL) ||
		errors.Is(err, domainpool.ErrNoAvailability) ||
		errors.Is(err, domainpool.ErrInvalidAvailability) ||
		errors.Is(err, domainpool.ErrNameLength) ||
		errors.Is(err, domainpool.ErrLocationLength) ||
		errors.Is(err, domainpool.ErrDescription)
}
