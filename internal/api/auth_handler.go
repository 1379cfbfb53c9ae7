package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/service/auth"
	"github.com/voyagr/voyagr-api/internal/store"
)

// AuthHandler serves the registration and login endpoints. Both respond
// with an access token on success so clients can call the trip endpoints
// immediately.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid registration data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "An account with this email already exists")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Could not complete registration", err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user.ID)
}

// Login handles POST /auth/login. Unknown emails and wrong passwords get
// the same response, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Email or password is incorrect")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Could not complete login", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Email or password is incorrect")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user.ID)
}

// respondWithToken issues an access token for the user and writes the
// authentication response.
func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, userID uuid.UUID) {
	token, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Could not issue access token", err)
		return
	}

	RespondWithJSON(w, r, status, AuthResponse{
		UserID: userID,
		Token:  token,
	})
}
