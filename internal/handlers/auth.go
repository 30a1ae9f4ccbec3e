package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/events"
	"github.com/middleclass/localstore/internal/logging"
	"github.com/middleclass/localstore/internal/notify"
	"github.com/middleclass/localstore/internal/session"
)

const adminCookie = "adminToken"

type AuthHandler struct {
	Gate     *session.Gate
	Notifier *notify.Notifier
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicAdmin, "admin", event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Gate.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidEmail):
			h.Notifier.Push(notify.LevelError, "Please enter a valid email address!")
			l.Warn("login_failed", "status", 400, "reason", "invalid email")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid email")
		case errors.Is(err, session.ErrUnauthorizedEmail):
			h.Notifier.Push(notify.LevelError, "Access Denied! This email is not authorized for admin access.")
			l.Warn("login_failed", "status", 401, "reason", "unauthorized email")
			return echo.NewHTTPError(http.StatusUnauthorized, "email not authorized")
		case errors.Is(err, session.ErrInvalidPassword):
			h.Notifier.Push(notify.LevelError, "Invalid password!")
			l.Warn("login_failed", "status", 401, "reason", "invalid password")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
		default:
			l.Error("login_failed", "status", 500, "reason", "session write failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot store session")
		}
	}

	token, err := h.Gate.Token(rec.Email, rec.RememberMe)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "token signing failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	ttl := 24 * time.Hour
	if rec.RememberMe {
		ttl = 7 * 24 * time.Hour
	}
	c.SetCookie(CreateCookie(adminCookie, token, "/", time.Now().Add(ttl)))

	h.publish(c, map[string]any{"type": "admin_login", "email": rec.Email, "rememberMe": rec.RememberMe})

	h.Notifier.Push(notify.LevelSuccess, "Login successful! Redirecting...")
	l.Info("login_success", "email", rec.Email)
	return c.JSON(http.StatusOK, rec)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	h.Gate.Logout(ctx)
	c.SetCookie(CreateCookie(adminCookie, "", "/", time.Unix(0, 0)))

	h.publish(c, map[string]any{"type": "admin_logout"})

	h.Notifier.Push(notify.LevelSuccess, "Logged out successfully!")
	l.Info("logout_success")
	return c.NoContent(http.StatusNoContent)
}

// Session reports whether the stored admin session is still good.
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"authorized": h.Gate.Check(c.Request().Context()),
	})
}

// Notices returns the transient messages still on screen.
func (h *AuthHandler) Notices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Notifier.Active())
}
