package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/config"
	"github.com/streamtv/streamtv/internal/middleware"
	"github.com/streamtv/streamtv/internal/repository"
	"github.com/streamtv/streamtv/internal/session"
	"github.com/streamtv/streamtv/internal/utils"
)

// loginFailedMsg is the single message for every credential failure so the
// response never reveals whether a username exists.
const loginFailedMsg = "Invalid User Name or Password - Try again"

// AuthHandler bundles dependencies for the login/logout endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Customers *repository.CustomerRepo
	Sessions  session.Store
}

func NewAuthHandler(cfg config.Config, customers *repository.CustomerRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: customers, Sessions: sessions}
}

type loginReq struct {
	Uname    string `json:"uname" form:"uname"`
	Password string `json:"password" form:"password"`
}

// LoginForm describes the login form contract for the view layer.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle": "Login",
		"fields":    []string{"uname", "password"},
	})
}

// Login verifies credentials and establishes a session. The stored hash is
// only consulted when the username matches exactly one row; zero and
// multiple matches fail identically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Uname = strings.TrimSpace(req.Uname)
	if req.Uname == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "uname/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := h.Customers.CredentialByUsername(ctx, req.Uname)
	if err != nil {
		if err == repository.ErrAmbiguousUser {
			return c.JSON(http.StatusUnauthorized, echo.Map{"results": loginFailedMsg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"results": loginFailedMsg})
	}

	if err := establishSession(c, h.Cfg, h.Sessions, req.Uname); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": req.Uname})
}

// Logout clears the server-side session and expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid, ok := middleware.SessionID(c); ok {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		_ = h.Sessions.Clear(ctx, sid)
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"user": ""})
}

// establishSession creates a fresh server-side session for username, marks
// it authenticated (is_user=1, user=username) and sets the signed session
// cookie. Used by both login and registration.
func establishSession(c echo.Context, cfg config.Config, store session.Store, username string) error {
	sid, err := session.NewSessionID()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := store.Set(ctx, sid, session.KeyIsUser, "1"); err != nil {
		return err
	}
	if err := store.Set(ctx, sid, session.KeyUser, username); err != nil {
		return err
	}
	token, exp, err := session.NewToken(cfg.SessionSecret, sid, cfg.SessionTTLMin)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
