// Package response writes the two body shapes the API uses: JSON for
// successful results and plain text for status messages and errors.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const InternalErrorMessage = "Internal server error."

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Message writes a plain-text status message, such as "Client added.".
func Message(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

// Abort writes a plain-text error and stops the handler chain.
func Abort(c *gin.Context, statusCode int, message string) {
	c.Abort()
	c.String(statusCode, message)
}

func InternalError(c *gin.Context) {
	c.String(http.StatusInternalServerError, InternalErrorMessage)
}
