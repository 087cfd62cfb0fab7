package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/services"
	authutil "github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/middleware"
	"gorm.io/gorm"
)

// CookieMaxAge is the lifetime of both auth cookies. Access and
// refresh cookies share it; there is no refresh-exchange endpoint.
const CookieMaxAge = 30 * 24 * time.Hour

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	bruteForceProtection *middleware.BruteForceProtection
	audit                *services.AuditService
	email                *services.EmailService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection, audit *services.AuditService, email *services.EmailService) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		bruteForceProtection: bruteForceProtection,
		audit:                audit,
		email:                email,
	}
}

// setAuthCookies attaches both tokens as HTTP-only cookies
func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	expires := time.Now().Add(CookieMaxAge)

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(CookieMaxAge.Seconds()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(CookieMaxAge.Seconds()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// clearAuthCookies expires both auth cookies
func clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
}
