package handler

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/config"
	"taskapp/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookie = "oauth_state"

type GoogleHandler struct {
	svc     port.GoogleAuthService
	config  *oauth2.Config
	metrics *telemetry.AppMetrics
}

func NewGoogleHandler(svc port.GoogleAuthService, cfg *config.Config, metrics *telemetry.AppMetrics) *GoogleHandler {
	return &GoogleHandler{
		svc:     svc,
		metrics: metrics,
		config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		},
	}
}

// Login redirects the browser to Google's consent page.
func (g *GoogleHandler) Login(c *gin.Context) {
	buf := make([]byte, 16)

	if _, err := rand.Read(buf); err != nil {
		helper.SendInternalError(c, "Something went wrong")
		return
	}

	state := hex.EncodeToString(buf)

	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, g.config.AuthCodeURL(state))
}

// Callback exchanges the Google code, resolves the account and redirects the
// browser to the frontend with a one-time code. The access token itself never
// appears in the redirect URL.
func (g *GoogleHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := c.Cookie(oauthStateCookie)

	if err != nil || state == "" || c.Query("state") != state {
		helper.SendUnauthorizedError(c, "Invalid OAuth state")
		return
	}

	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	token, err := g.config.Exchange(ctx, c.Query("code"))

	if err != nil {
		slog.Error("Google#Callback", "error", err)
		helper.SendUnauthorizedError(c, "Failed to exchange token")
		return
	}

	email, err := g.fetchEmail(token.AccessToken)

	if err != nil {
		slog.Error("Google#Callback", "error", err)
		helper.SendInternalError(c, "Failed to fetch user info")
		return
	}

	user, err := g.svc.ValidateGoogleUser(ctx, email)

	if err != nil {
		slog.Error("Google#Callback", "error", err)
		helper.SendDomainError(c, err)
		return
	}

	redirectURL, err := g.svc.CompleteLogin(ctx, user)

	if err != nil {
		slog.Error("Google#Callback", "error", err)
		helper.SendInternalError(c, "Something went wrong")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

func (g *GoogleHandler) ExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.ExchangeCodeRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	token, err := g.svc.ExchangeCode(ctx, params.Code)

	if err != nil {
		slog.Error("Google#ExchangeCode", "error", err)
		g.metrics.RecordCodeExchange(ctx, "error")
		helper.SendDomainError(c, err)
		return
	}

	// Unknown, expired, or already-spent codes answer with a null body.
	if token == nil {
		g.metrics.RecordCodeExchange(ctx, "miss")
		c.JSON(http.StatusOK, nil)
		return
	}

	g.metrics.RecordCodeExchange(ctx, "success")

	c.JSON(http.StatusOK, token)
}

func (g *GoogleHandler) fetchEmail(accessToken string) (string, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	var googleUser struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return "", err
	}

	return googleUser.Email, nil
}
