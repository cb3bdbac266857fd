package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/dq/internal/question"
)

func (s *Server) getUsers(c *gin.Context) {
	users, err := s.guard.Users(c.Request.Context())
	if err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getAll(c *gin.Context) {
	qs, err := s.guard.All(c.Request.Context())
	if err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (s *Server) getQuestions(c *gin.Context) {
	week, ok := s.weekParam(c)
	if !ok {
		return
	}

	qs, err := s.guard.Get(c.Request.Context(), c.Param("user"), week)
	if err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (s *Server) setQuestions(c *gin.Context) {
	week, ok := s.weekParam(c)
	if !ok {
		return
	}

	if c.ContentType() != gin.MIMEJSON {
		s.abortWithError(c, http.StatusUnsupportedMediaType, CodeUnsupportedMedia,
			fmt.Errorf("content type must be %s, got %q", gin.MIMEJSON, c.ContentType()))
		return
	}

	var qs []question.Question
	if err := c.ShouldBindJSON(&qs); err != nil {
		s.abortWithError(c, http.StatusBadRequest, CodeInvalidBody, fmt.Errorf("invalid questions body: %w", err))
		return
	}
	if qs == nil {
		qs = []question.Question{}
	}

	if err := s.guard.Set(c.Request.Context(), c.Param("user"), week, qs); err != nil {
		s.abortWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (s *Server) healthz(c *gin.Context) {
	if s.guard.Poisoned() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "poisoned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// weekParam parses the :week path segment, rendering a 400 on failure.
func (s *Server) weekParam(c *gin.Context) (uint8, bool) {
	raw := c.Param("week")
	week, err := question.ParseWeek(raw)
	if err != nil {
		s.abortWithError(c, http.StatusBadRequest, CodeInvalidWeek,
			fmt.Errorf("week %q must be an integer between 0 and 255", raw))
		return 0, false
	}
	return week, true
}
