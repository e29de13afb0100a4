package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/server/users"
	"github.com/microstory/server/internal/shared"
)

func (s *Server) register(c *gin.Context) {
	var req struct {
		Pseudo   string `json:"pseudo"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	result, err := s.users.Register(c.Request.Context(), req.Pseudo, req.Email, req.Password)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"user": result.User, "token": result.Token})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"user": result.User, "token": result.Token})
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"user": user})
}

func (s *Server) updateProfile(c *gin.Context) {
	var req struct {
		Pseudo   *string `json:"pseudo"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, shared.NewValidationError("body", "must be a valid JSON object"))
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), currentUserID(c), users.ProfileUpdate{
		Pseudo:   req.Pseudo,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"user": user})
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.users.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "account deleted"})
}
