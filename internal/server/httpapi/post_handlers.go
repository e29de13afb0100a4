package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/shared"
)

// pathID parses the :id parameter. A non-numeric id reads as a missing
// resource, not a validation problem.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.ErrNotFound
	}
	return id, nil
}

func (s *Server) createPost(c *gin.Context) {
	var req struct {
		Body     string  `json:"body"`
		MediaKey *string `json:"mediaKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	post, err := s.posts.Create(c.Request.Context(), currentUserID(c), req.Body, req.MediaKey)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"post": post})
}

func (s *Server) getPost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	post, err := s.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"post": post})
}

func (s *Server) feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := s.posts.Feed(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"posts": list})
}

func (s *Server) updatePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	var req struct {
		Body     string  `json:"body"`
		MediaKey *string `json:"mediaKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	post, err := s.posts.Update(c.Request.Context(), currentUserID(c), id, req.Body, req.MediaKey)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"post": post})
}

func (s *Server) deletePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	if err := s.posts.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "post deleted"})
}

func (s *Server) likePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	count, err := s.reactions.Like(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"likeCount": count})
}

func (s *Server) unlikePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	count, err := s.reactions.Unlike(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"likeCount": count})
}
