package controllers

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB    *gorm.DB
	Store *session.Store
	Cfg   *config.Config
}

func NewAuthController(db *gorm.DB, store *session.Store, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Store: store, Cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates an account, starts a session and returns an API token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	// self-registration may pick teacher or learner; anything else falls
	// back to the plain user role, admin stays unreachable here
	role := models.RoleDefault
	if input.Role == models.RoleTeacher || input.Role == models.RoleLearner {
		role = input.Role
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	if err := ac.startSession(c, user.ID); err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  userJSON(user),
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticates by email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	if err := ac.startSession(c, user.ID); err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  userJSON(user),
	})
}

// Logout destroys the server-side session.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	sess, err := ac.Store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return utils.InternalServerError(c, err.Error())
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the identity behind the current session or token.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

func (ac *AuthController) startSession(c *fiber.Ctx, userID uint) error {
	sess, err := ac.Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", userID)
	return sess.Save()
}
