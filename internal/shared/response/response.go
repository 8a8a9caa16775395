package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bootcamp-backend/internal/shared/apperror"
)

// Response is the success envelope
type Response struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Data       interface{} `json:"data"`
}

// ErrorBody is the failure envelope
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithCount(c *gin.Context, statusCode int, count int, pagination, data interface{}) {
	c.JSON(statusCode, Response{
		Success:    true,
		Count:      &count,
		Pagination: pagination,
		Data:       data,
	})
}

// Error renders err through the apperror taxonomy.
// Internal failures are logged and replaced with a generic message.
func Error(c *gin.Context, err error) {
	appErr := apperror.As(err)

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		message = "Server Error"
	} else if appErr.Err != nil {
		log.Warn().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("kind", string(appErr.Kind)).
			Msg(appErr.Message)
	}

	ErrorResponse(c, appErr.Status(), message)
}

// ErrorResponse writes the failure envelope with an explicit status
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Error:   message,
	})
}

// AbortWithError writes the failure envelope and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Common error responses
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Error: message})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorBody{Error: message})
}

func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorBody{Error: message})
}
