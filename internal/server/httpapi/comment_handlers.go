package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/shared"
)

func (s *Server) addComment(c *gin.Context) {
	postID, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	comment, err := s.comments.Add(c.Request.Context(), currentUserID(c), postID, req.Body)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) listComments(c *gin.Context) {
	postID, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	list, err := s.comments.List(c.Request.Context(), postID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"comments": list})
}

func (s *Server) deleteComment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if err := s.comments.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "comment deleted"})
}
