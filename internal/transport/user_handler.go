package transport

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents the login response
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}

// UserHandler handles HTTP requests for registration, login and user listing
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers user and auth routes. The login limiter guards
// the credential endpoints; the auth middleware guards /users/me.
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, loginLimiter func(http.Handler) http.Handler) {
	r.With(loginLimiter).Post("/users", h.Register)
	r.With(loginLimiter).Post("/auth/login", h.Login)
	r.Get("/users", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/users/me", h.Me)
	})
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			h.logger.Debug("Registration rejected, username taken", zap.String("username", req.Username))
			middleware.RespondWithError(w, http.StatusBadRequest, "username already registered")
			return
		}

		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	middleware.RespondWithJSON(w, http.StatusCreated, newUserResponse(user))
}

// Login handles user authentication
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// The same response covers unknown usernames and wrong passwords.
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Debug("Login rejected", zap.String("username", req.Username))
			w.Header().Set("WWW-Authenticate", "Bearer")
			middleware.RespondWithError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}

		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("username", req.Username))
	middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{Token: token, TokenType: "bearer"})
}

// List handles listing users within a skip/limit window
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := listWindow(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.userService.List(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Me returns the profile of the authenticated user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		h.logger.Error("Username not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		h.logger.Error("Failed to load profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newUserResponse(user))
}
