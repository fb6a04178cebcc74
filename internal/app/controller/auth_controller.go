package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/internal/app/service"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/pkg/logger"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse login body", err)
		apperrors.Internal(c, "")
		return
	}

	if req.Email == "" || req.Password == "" {
		apperrors.BadRequest(c, "Email and password are required", apperrors.ValidationError)
		return
	}

	tokens, user, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials, service.ErrUserInactive:
			apperrors.RespondWithError(c, http.StatusUnauthorized,
				"Invalid email or password", apperrors.AuthInvalidCredentials)
		default:
			apperrors.Database(c, "Login failed")
		}
		return
	}

	respond(c, http.StatusOK, gin.H{
		"tokens": tokens,
		"user":   user,
	}, nil, "Login successful")
}

// Refresh handles POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.Internal(c, "")
		return
	}

	var req refreshRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse refresh body", err)
		apperrors.Internal(c, "")
		return
	}

	if req.RefreshToken == "" {
		apperrors.BadRequest(c, "refresh_token is required", apperrors.ValidationError)
		return
	}

	tokens, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusUnauthorized,
			"Invalid refresh token", apperrors.AuthTokenInvalid)
		return
	}

	respond(c, http.StatusOK, gin.H{"tokens": tokens}, nil, "")
}
