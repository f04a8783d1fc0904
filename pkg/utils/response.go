package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope: a bare description string alongside the
// status code.
type ErrorBody struct {
	Description string `json:"description"`
}

func ErrorResponse(c *gin.Context, code int, description string) {
	c.JSON(code, ErrorBody{Description: description})
}
