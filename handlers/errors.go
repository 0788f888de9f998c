package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"spiritualgifts/middleware"
	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalid, services.KindConflict:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a typed service error as-is. Anything else is logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	if e, ok := services.AsError(err); ok {
		body := gin.H{"error": e.Message}
		for k, v := range e.Details {
			body[k] = v
		}
		c.JSON(statusFor(e.Kind), body)
		return
	}

	log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// paramID parses a positive numeric path parameter, writing a 400 when it is
// not one.
func paramID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body and applies the binding tags, writing a 400
// with the first broken rule on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(verrs)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func currentUser(c *gin.Context) (services.Identity, bool) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return identity, ok
}
