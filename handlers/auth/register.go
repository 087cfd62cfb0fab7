package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	authutil "github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/response"
	"github.com/campushub/portal-api/utils/validation"
	"gorm.io/gorm"
)

// RegisterRequest is a student self-registration request. BotCheck is
// the answer to the registration form's arithmetic question (2 + 2).
type RegisterRequest struct {
	USN           string `json:"usn" validate:"required"`
	Name          string `json:"name" validate:"required,min=2"`
	Branch        string `json:"branch"`
	Semester      int    `json:"semester"`
	Department    string `json:"department"`
	PersonalEmail string `json:"personal_email" validate:"required,email"`
	BotCheck      string `json:"bot_check" validate:"required"`
}

// RegisterResponse confirms the created account. The temporary
// password is delivered by email, never in the response.
type RegisterResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// portalDomain is the institutional mail domain portal logins are
// minted under
const portalDomain = "@university.edu"

var registerValidator = validation.NewValidator()

// Register creates a PENDING student account with a generated portal
// email and temporary password. An admin must activate the account
// before login succeeds.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := registerValidator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if strings.TrimSpace(req.BotCheck) != "4" {
		return response.BadRequest(c, "Verification answer is incorrect. Hint: what is 2 + 2?")
	}

	usn := strings.ToLower(strings.TrimSpace(req.USN))
	if ok, reason := validation.ValidateUSN(usn); !ok {
		return response.BadRequest(c, reason)
	}
	if !validation.ValidateEmail(req.PersonalEmail) {
		return response.BadRequest(c, "A valid personal email is required")
	}

	portalEmail := usn + portalDomain

	var existing model.User
	if err := h.db.Where("email = ?", portalEmail).First(&existing).Error; err == nil {
		return response.Conflict(c, "An account for this USN already exists")
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check existing accounts")
	}

	tempPassword, err := authutil.GenerateTempPassword()
	if err != nil {
		return response.InternalServerError(c, "Failed to generate credentials")
	}
	hash, err := authutil.HashPassword(tempPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to hash password")
	}

	user := model.User{
		Email:        portalEmail,
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Status:       model.StatusPending,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		student := model.Student{
			USN:           usn,
			Name:          req.Name,
			Branch:        req.Branch,
			Semester:      req.Semester,
			Department:    req.Department,
			PersonalEmail: req.PersonalEmail,
			UserID:        user.ID,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	// Credential delivery is best-effort; the account exists either way
	if err := h.email.SendCredentials(req.PersonalEmail, req.Name, portalEmail, tempPassword); err != nil {
		_ = h.audit.Record(c.Context(), services.AuditEntry{
			ActorEmail: portalEmail,
			Action:     "register.email_failed",
			Detail:     err.Error(),
		})
	}

	_ = h.audit.Record(c.Context(), services.AuditEntry{
		ActorID:    &user.ID,
		ActorEmail: portalEmail,
		ActorRole:  string(model.RoleStudent),
		Action:     "register",
		IPAddress:  c.IP(),
	})

	return response.Created(c, RegisterResponse{
		Email:  portalEmail,
		Status: string(user.Status),
	})
}
