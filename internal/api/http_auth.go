package api

import (
	"errors"
	"net/http"

	"aqualeaf/internal/account"
	"aqualeaf/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// forgotPasswordMessage is returned for every forgot-password request,
// whether or not the email is registered.
const forgotPasswordMessage = "If that email is registered, you'll receive a reset link shortly."

func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, account.ErrConflict) {
			BadRequest(c, ErrCodeAlreadyRegistered, "Already registered")
			return
		}
		logrus.WithError(err).Error("registration failed")
		InternalError(c, "failed to register")
		return
	}

	if !result.EmailSent {
		c.JSON(http.StatusOK, gin.H{
			"message":    "Account created but verification email failed to send.",
			"email_sent": false,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Registered successfully — verification email sent.",
		"email_sent": true,
	})
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		var notVerified *account.NotVerifiedError
		switch {
		case errors.Is(err, account.ErrInvalidCredential):
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid credentials")
		case errors.Is(err, account.ErrSuspended):
			Forbidden(c, ErrCodeAccountSuspended, "Your account has been suspended. Please contact the administrator.")
		case errors.Is(err, account.ErrDeactivated):
			Forbidden(c, ErrCodeAccountDeactivated, "Your account has been deactivated.")
		case errors.As(err, &notVerified):
			c.JSON(http.StatusForbidden, gin.H{
				"code":         ErrCodeNotVerified,
				"message":      "Account not verified",
				"not_verified": true,
				"email":        notVerified.Email,
			})
		default:
			logrus.WithError(err).Error("login failed")
			InternalError(c, "failed to log in")
		}
		return
	}

	h.setSessionCookie(c, result.Token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

func (h *HTTPHandler) AdminLogin(c *gin.Context) {
	var req entity.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	result, err := h.accounts.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredential) {
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid credentials")
			return
		}
		logrus.WithError(err).Error("admin login failed")
		InternalError(c, "failed to log in")
		return
	}

	h.setSessionCookie(c, result.Token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

func (h *HTTPHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token missing"})
		return
	}

	if err := h.accounts.Verify(c.Request.Context(), token); err != nil {
		if errors.Is(err, account.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}
		logrus.WithError(err).Error("verification failed")
		InternalError(c, "failed to verify")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
}

func (h *HTTPHandler) ResendVerification(c *gin.Context) {
	var req entity.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	err := h.accounts.ResendVerification(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification email resent"})
	case errors.Is(err, account.ErrNotFound):
		NotFound(c, ErrCodeAccountNotFound, "Account not found")
	case errors.Is(err, account.ErrAlreadyVerified):
		BadRequest(c, ErrCodeAlreadyVerified, "Already verified")
	case errors.Is(err, account.ErrMailDelivery):
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeMailDelivery, "Failed to send email")
	default:
		logrus.WithError(err).Error("resend verification failed")
		InternalError(c, "failed to resend verification")
	}
}

func (h *HTTPHandler) ForgotPassword(c *gin.Context) {
	var req entity.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	if err := h.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		// Internal failures still return the generic body so the response
		// never discloses whether the email is registered.
		logrus.WithError(err).Error("password reset request failed")
	}
	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	err := h.accounts.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
	case errors.Is(err, account.ErrExpired):
		BadRequest(c, ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, account.ErrInvalidToken):
		BadRequest(c, ErrCodeInvalidToken, "Invalid or expired token")
	default:
		logrus.WithError(err).Error("password reset failed")
		InternalError(c, "failed to reset password")
	}
}

func (h *HTTPHandler) Me(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.accounts.Profile(c.Request.Context(), claims.FarmID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			NotFound(c, ErrCodeAccountNotFound, "Account not found")
			return
		}
		logrus.WithError(err).WithField("farm_id", claims.FarmID).Error("failed to load profile")
		InternalError(c, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
