package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/token"
	"github.com/fanzoftheone/taskdeck/internal/types"
	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler owns the thin registration/login glue around the core.
type AuthHandler struct {
	users  store.UserStore
	tokens *token.Service
	now    func() time.Time
	logger *slog.Logger
}

func NewAuthHandler(users store.UserStore, tokens *token.Service, now func() time.Time, logger *slog.Logger) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{users: users, tokens: tokens, now: now, logger: logger}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req CreateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.users.GetUserByEmail(ctx.Request.Context(), email)

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("checking existing user failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		h.logger.Error("hashing password failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    h.now(),
	}

	if err := h.users.CreateUser(ctx.Request.Context(), user); err != nil {
		h.logger.Error("creating user failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.issueToken(ctx, user, http.StatusCreated)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(ctx.Request.Context(), email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		h.logger.Error("fetching user failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.issueToken(ctx, user, http.StatusOK)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Email: currentUser.Email,
		},
	})
}

func (h *AuthHandler) issueToken(ctx *gin.Context, user *models.User, status int) {
	accessToken, err := h.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))

	if err != nil {
		h.logger.Error("issuing token failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{
		"access_token": accessToken,
		"user": types.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}
