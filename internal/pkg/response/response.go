package response

import "github.com/gin-gonic/gin"

// JSON writes data as the whole response body.
func JSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Message writes {"message": msg}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// MessageWith writes {"message": msg} merged with extra fields.
func MessageWith(c *gin.Context, statusCode int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error writes {"error": msg}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// ErrorWithDetails writes {"error": msg, "details": details}.
func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error":   message,
		"details": details,
	})
}

// Abort writes {"error": msg} and stops the handler chain.
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
