package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/response"
)

// Recovery turns a panic into the 500 error envelope. The stack is logged,
// never sent to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			response.AbortWithError(c, apperror.Internal(fmt.Errorf("panic: %v", rec)))
		}()

		c.Next()
	}
}
