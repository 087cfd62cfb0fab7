package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	authutil "github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents account data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

// Login verifies credentials under the account lockout policy and, on
// success, sets both auth cookies
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	ip := c.IP()
	now := time.Now()

	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	state := services.LockoutState{
		FailedAttempts: user.FailedAttempts,
		LockoutUntil:   user.LockoutUntil,
	}

	// A locked account rejects the attempt without consuming it
	decision := services.CheckLockout(state, now)
	if decision.Locked {
		_ = h.audit.Record(c.Context(), services.AuditEntry{
			ActorEmail: req.Email,
			Action:     "login.locked",
			IPAddress:  ip,
		})
		return response.Forbidden(c, decision.Message)
	}
	state = decision.Updated

	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		decision = services.RecordFailure(state, now)
		if err := h.persistLockout(&user, decision.Updated); err != nil {
			return response.InternalServerError(c, "Login temporarily unavailable")
		}

		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		_ = h.audit.Record(c.Context(), services.AuditEntry{
			ActorEmail: req.Email,
			Action:     "login.failed",
			IPAddress:  ip,
		})

		if decision.Locked {
			return response.Forbidden(c, decision.Message)
		}
		return response.Unauthorized(c, decision.Message)
	}

	// Correct password: counters reset before the status gate so a
	// PENDING account's successful attempt still clears its lockout
	if err := h.persistLockout(&user, services.RecordSuccess(state)); err != nil {
		return response.InternalServerError(c, "Login temporarily unavailable")
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	switch user.Status {
	case model.StatusPending:
		return response.Forbidden(c, "Account is awaiting approval. Contact the administration office.")
	case model.StatusSuspended:
		return response.Forbidden(c, "Account is suspended. Contact the administration office.")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role), string(user.Status))
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}
	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken)

	_ = h.audit.Record(c.Context(), services.AuditEntry{
		ActorID:    &user.ID,
		ActorEmail: user.Email,
		ActorRole:  string(user.Role),
		Action:     "login.success",
		IPAddress:  ip,
	})

	return response.Success(c, LoginResponse{
		User:      toUserResponse(&user),
		ExpiresIn: int(CookieMaxAge.Seconds()),
	})
}

// persistLockout writes the updated lockout counters back to the row.
// The lockout policy is only as strong as this write, so failures are
// surfaced to the caller.
func (h *AuthHandler) persistLockout(user *model.User, state services.LockoutState) error {
	err := h.db.Model(user).Updates(map[string]interface{}{
		"failed_attempts": state.FailedAttempts,
		"lockout_until":   state.LockoutUntil,
	}).Error
	if err != nil {
		log.Printf("Auth: failed to persist lockout state for %s: %v", user.Email, err)
	}
	return err
}

// Logout clears both auth cookies
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if userID, ok := middleware.GetUserID(c); ok {
		email, _ := middleware.GetUserEmail(c)
		_ = h.audit.Record(c.Context(), services.AuditEntry{
			ActorID:    &userID,
			ActorEmail: email,
			Action:     "logout",
			IPAddress:  c.IP(),
		})
	}
	clearAuthCookies(c)
	return response.SuccessWithMessage(c, "Logged out", nil)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, toUserResponse(user))
}
