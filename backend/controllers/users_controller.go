package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/policy"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role"`
}

// List godoc
// @Summary List accounts
// @Description Admin-only paginated account listing
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users [get]
func (uc *UsersController) List(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if caller.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Forbidden")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	uc.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := uc.DB.Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		result = append(result, userJSON(u))
	}
	return utils.Paginate(c, result, total, page, pageSize)
}

// Get returns a single account, admin or self.
func (uc *UsersController) Get(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	targetID, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}
	if !policy.Allow(caller, policy.ActionRead, policy.Account(targetID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var user models.User
	if err := uc.DB.First(&user, targetID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	return c.JSON(userJSON(user))
}

// Create lets an admin provision an account directly.
func (uc *UsersController) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if !policy.Allow(caller, policy.ActionCreate, policy.Account(0)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input CreateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already in use")
	}

	password := input.Password
	if password == "" {
		password = "changeme"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	role := input.Role
	if role == "" {
		role = models.RoleDefault
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(userJSON(user))
}

// Update mutates an account, admin or self. A role field from a non-admin
// is dropped silently rather than rejected.
func (uc *UsersController) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	targetID, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}
	if !policy.Allow(caller, policy.ActionUpdate, policy.Account(targetID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var user models.User
	if err := uc.DB.First(&user, targetID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}
	if input.Role != "" && policy.CanSetRole(caller) {
		user.Role = input.Role
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(userJSON(user))
}

// Delete removes an account (admin or self) and cascades to the courses it
// owns, per policy.Cascades. Lessons the account created and its rows in
// other courses' student lists are left behind. Deleting an id that does
// not exist still reports ok.
func (uc *UsersController) Delete(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	targetID, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}
	if !policy.Allow(caller, policy.ActionDelete, policy.Account(targetID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	if err := uc.DB.Delete(&models.User{}, targetID).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	for _, kind := range policy.Cascades[policy.KindAccount] {
		if kind == policy.KindCourse {
			if err := uc.DB.Where("owner_id = ?", targetID).Delete(&models.Course{}).Error; err != nil {
				return utils.InternalServerError(c, err.Error())
			}
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AdminPage renders the server-side user table.
func (uc *UsersController) AdminPage(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if caller.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Forbidden")
	}

	var users []models.User
	if err := uc.DB.Order("id").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.Render("admin-users", fiber.Map{"Users": users})
}
