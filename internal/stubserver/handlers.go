package stubserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/stubserver/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func toJSON(u *users.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, ProfileImage: u.ProfileImage}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type profileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	ProfileImage    *string `json:"profileImage"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

// reject answers with the status and text for a service error. Unknown
// errors are internal and their text is not sent.
func (s *Server) reject(c *gin.Context, err error) {
	status := http.StatusBadRequest
	msg := err.Error()
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, users.ErrNotVerified):
		status = http.StatusForbidden
	case errors.Is(err, users.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, users.ErrUserExists):
		status = http.StatusConflict
	case isServiceError(err):
	default:
		status, msg = http.StatusInternalServerError, users.ErrInternal.Error()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	failure(c, status, msg)
}

func isServiceError(err error) bool {
	for _, e := range []error{
		users.ErrInvalidOTP, users.ErrMissingFields, users.ErrWeakPassword,
		users.ErrWrongPassword, users.ErrCurrentPassword, users.ErrEmptyName,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		failure(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) health(c *gin.Context) {
	success(c, http.StatusOK, "ok", nil)
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if !bind(c, &req) {
		return
	}
	err := s.users.Signup(c.Request.Context(), users.SignupInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusCreated, "OTP sent to your email", nil)
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req verifyRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := s.users.VerifySignup(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusOK, "Email verified", sessionJSON{Token: token, User: toJSON(u)})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.reject(c, err)
		return
	}
	s.logger.Info("user logged in", zap.String("user_id", u.ID))
	c.JSON(http.StatusOK, loginResponse{Success: true, Message: "Login successful", Token: token, User: toJSON(u)})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotRequest
	if !bind(c, &req) {
		return
	}
	if err := s.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusOK, "OTP sent to your email", nil)
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetRequest
	if !bind(c, &req) {
		return
	}
	if err := s.users.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusOK, "Password reset successful", nil)
}

func (s *Server) getProfile(c *gin.Context) {
	u, err := s.users.Profile(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusOK, "", toJSON(u))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if !bind(c, &req) {
		return
	}
	u, err := s.users.UpdateProfile(c.Request.Context(), c.GetString(userIDKey), users.ProfileChange{
		Name:            req.Name,
		Phone:           req.Phone,
		ProfileImage:    req.ProfileImage,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		s.reject(c, err)
		return
	}
	success(c, http.StatusOK, "Profile updated", toJSON(u))
}
