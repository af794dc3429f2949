package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/dto"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/middleware"
)

// CurrentArtistID extracts authenticated artist identifier from context.
func CurrentArtistID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.ArtistIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func errorBody(message string) dto.ErrorResponse {
	return dto.ErrorResponse{Success: false, Error: message}
}
