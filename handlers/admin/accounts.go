package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/response"
	"github.com/campushub/portal-api/utils/validation"
	"gorm.io/gorm"
)

const portalDomain = "@university.edu"

var accountValidator = validation.NewValidator()

// ListStudents returns student profiles with their account status
func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	var students []model.Student
	query := h.db.Preload("User").Order("usn ASC")
	if dept := c.Query("department"); dept != "" {
		query = query.Where("department = ?", dept)
	}
	if sem := c.QueryInt("semester", 0); sem > 0 {
		query = query.Where("semester = ?", sem)
	}
	if err := query.Find(&students).Error; err != nil {
		return response.InternalServerError(c, "Failed to load students")
	}
	return response.Success(c, students)
}

// ListFaculty returns all faculty profiles
func (h *AdminHandler) ListFaculty(c *fiber.Ctx) error {
	var faculty []model.Faculty
	if err := h.db.Order("employee_id ASC").Find(&faculty).Error; err != nil {
		return response.InternalServerError(c, "Failed to load faculty")
	}
	return response.Success(c, faculty)
}

// PendingAccounts lists accounts awaiting admin approval
func (h *AdminHandler) PendingAccounts(c *fiber.Ctx) error {
	var users []model.User
	if err := h.db.Where("status = ?", model.StatusPending).Order("created_at ASC").Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to load pending accounts")
	}
	return response.Success(c, users)
}

// ApproveAccount activates a pending account
func (h *AdminHandler) ApproveAccount(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "Account not found")
	}
	if user.Status != model.StatusPending {
		return response.BadRequest(c, "Account is not awaiting approval")
	}

	if err := h.db.Model(&user).Update("status", model.StatusActive).Error; err != nil {
		return response.InternalServerError(c, "Failed to approve account")
	}
	h.recordAction(c, "account.approve", user.Email, "account activated")
	return response.SuccessWithMessage(c, "Account approved", fiber.Map{"email": user.Email})
}

// SuspendAccount suspends an account instead of deleting it
func (h *AdminHandler) SuspendAccount(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.NotFound(c, "Account not found")
	}
	if user.Role == model.RoleAdmin {
		return response.Forbidden(c, "Admin accounts cannot be suspended")
	}

	if err := h.db.Model(&user).Update("status", model.StatusSuspended).Error; err != nil {
		return response.InternalServerError(c, "Failed to suspend account")
	}
	h.recordAction(c, "account.suspend", user.Email, "account suspended")
	return response.SuccessWithMessage(c, "Account suspended", fiber.Map{"email": user.Email})
}

// CreateFacultyRequest provisions a faculty account
type CreateFacultyRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Department    string `json:"department"`
	PersonalEmail string `json:"personal_email" validate:"required,email"`
}

// CreateFaculty provisions an active faculty account with a generated
// temporary password mailed to the personal address
func (h *AdminHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := accountValidator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if !validation.ValidateEmail(req.PersonalEmail) {
		return response.BadRequest(c, "Invalid personal email")
	}

	employeeID := strings.ToLower(strings.TrimSpace(req.EmployeeID))
	email := employeeID + portalDomain

	var existing model.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return response.Conflict(c, "An account with this employee id already exists")
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return response.InternalServerError(c, "Failed to generate credentials")
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate credentials")
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleFaculty,
		Status:       model.StatusActive,
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		faculty := model.Faculty{
			EmployeeID: employeeID,
			Name:       req.Name,
			Department: req.Department,
			UserID:     user.ID,
		}
		return tx.Create(&faculty).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	if err := h.email.SendCredentials(req.PersonalEmail, req.Name, email, tempPassword); err != nil {
		h.recordAction(c, "faculty.create.email_failed", email, err.Error())
	}
	h.recordAction(c, "faculty.create", email, "faculty account provisioned")

	return response.Created(c, fiber.Map{"email": email})
}
