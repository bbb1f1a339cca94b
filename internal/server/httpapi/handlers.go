package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/prisynced/internal/common"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type trackRequest struct {
	URL string `json:"url"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if _, err := s.users.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		s.fail(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err, "Login failed")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AccessTokenCookieName, token, int(s.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (s *Server) addItem(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	res, err := s.tracking.Add(c.Request.Context(), c.GetString(ctxUserID), req.URL)
	if err != nil {
		s.fail(c, err, "Failed to add product")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listItems(c *gin.Context) {
	list, err := s.tracking.List(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		s.fail(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) removeItem(c *gin.Context) {
	productURL := c.Query("url")
	if productURL == "" && c.Request.ContentLength != 0 {
		var req trackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		productURL = req.URL
	}

	if err := s.tracking.Remove(c.Request.Context(), c.GetString(ctxUserID), productURL); err != nil {
		s.fail(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// fail maps err to a status code. Only actionable errors carry their own
// message; everything else is logged and reported as fallback.
func (s *Server) fail(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, common.ErrorUnsupportedSource):
		status, msg = http.StatusBadRequest, "Unsupported product URL"
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, "Missing required fields"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, msg = http.StatusConflict, "User already exists"
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "Not found"
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), msg, "request_id", c.GetString(ctxRequestID), "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}
