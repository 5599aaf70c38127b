// controllers/helpers.go
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func authUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func authUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get("userEmail")
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
