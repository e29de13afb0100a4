package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/shared"
)

func (s *Server) presignUpload(c *gin.Context) {
	key, url, err := s.media.PresignUpload(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"key": key, "url": url})
}

func (s *Server) presignDownload(c *gin.Context) {
	// Storage keys contain slashes, so the route captures a wildcard.
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		respondError(c, s.logger, shared.ErrNotFound)
		return
	}

	url, err := s.media.PresignDownload(c.Request.Context(), key)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"url": url})
}
