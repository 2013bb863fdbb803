package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/config"
	"github.com/faizxmak/latilong/internal/domain/user"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/infrastructure/metrics"
	"github.com/faizxmak/latilong/internal/infrastructure/oauth"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/requests"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/responses"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

const (
	stateCookieName   = "oauth_state"
	stateCookieMaxAge = 600
)

// AccountService is the account surface the auth handler depends on.
type AccountService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	GetByID(ctx context.Context, id uint) (*user.User, error)
	EnsureOAuthUser(ctx context.Context, email, firstName, lastName, pictureURL, provider string) (*user.User, error)
}

// AuthHandler serves signup, login, profile, and the OAuth code flow.
type AuthHandler struct {
	accounts  AccountService
	tokens    *auth.TokenManager
	exchanger *oauth.Exchanger
	webAppURL string
	logger    zerolog.Logger
}

// NewAuthHandler wires the auth handler.
func NewAuthHandler(accounts AccountService, tokens *auth.TokenManager, exchanger *oauth.Exchanger, cfg *config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		tokens:    tokens,
		exchanger: exchanger,
		webAppURL: cfg.WebAppURL,
		logger:    logger.With().Str("component", "auth-handler").Logger(),
	}
}

// Signup creates an account and returns it with a token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req requests.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		metrics.RecordAuthRequest("signup", "failure")
		apperrors.WriteError(c, err, h.logger)
		return
	}

	h.respondWithToken(c, http.StatusCreated, u, "signup")
}

// Login verifies credentials and returns the account with a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	u, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthRequest("login", "failure")
		apperrors.WriteError(c, err, h.logger)
		return
	}

	h.respondWithToken(c, http.StatusOK, u, "login")
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	u, err := h.accounts.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, responses.NewUserPayload(u))
}

// OAuthRedirect sends the browser to the provider consent page.
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	provider := c.Param("provider")
	if !h.exchanger.Enabled(provider) {
		apperrors.WriteNotFound(c, "unknown or unconfigured oauth provider")
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		apperrors.WriteInternalError(c, "failed to generate state")
		return
	}

	authURL, err := h.exchanger.AuthURL(provider, state)
	if err != nil {
		apperrors.WriteNotFound(c, "unknown oauth provider")
		return
	}

	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, authURL)
}

// OAuthCallback exchanges the provider code, upserts the account, and
// redirects back to the web app with a token in the fragment.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	if !h.exchanger.Enabled(provider) {
		apperrors.WriteNotFound(c, "unknown or unconfigured oauth provider")
		return
	}

	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != cookieState {
		metrics.RecordAuthRequest("oauth_"+provider, "failure")
		apperrors.WriteUnauthorized(c, "oauth state mismatch")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		apperrors.WriteValidationError(c, "code is required")
		return
	}

	identity, err := h.exchanger.Exchange(c.Request.Context(), provider, code)
	if err != nil {
		metrics.RecordAuthRequest("oauth_"+provider, "failure")
		h.logger.Warn().Err(err).Str("provider", provider).Msg("oauth exchange failed")
		apperrors.WriteUnauthorized(c, "oauth exchange failed")
		return
	}

	u, err := h.accounts.EnsureOAuthUser(c.Request.Context(), identity.Email,
		identity.FirstName, identity.LastName, identity.PictureURL, identity.Provider)
	if err != nil {
		metrics.RecordAuthRequest("oauth_"+provider, "failure")
		apperrors.WriteError(c, err, h.logger)
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		apperrors.WriteInternalError(c, "failed to issue token")
		return
	}

	metrics.RecordAuthRequest("oauth_"+provider, "success")
	c.Redirect(http.StatusFound, h.webAppURL+"/#token="+url.QueryEscape(token))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, u *user.User, authType string) {
	token, err := h.tokens.Issue(u)
	if err != nil {
		metrics.RecordAuthRequest(authType, "failure")
		apperrors.WriteInternalError(c, "failed to issue token")
		return
	}

	metrics.RecordAuthRequest(authType, "success")
	c.JSON(status, responses.AuthPayload{
		User:  responses.NewUserPayload(u),
		Token: token,
	})
}
