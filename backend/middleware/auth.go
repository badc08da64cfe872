package middleware

import (
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

const userKey = "user"

// AttachUser resolves the caller's identity from the session cookie, or
// from a bearer token for API clients, and stores it in the request locals.
// It never rejects: routes that need an identity use RequireAuth, public
// routes (the catalog) just get a nil user.
func AttachUser(db *gorm.DB, store *session.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := sessionUserID(c, store); ok {
			attach(c, db, uid)
			return c.Next()
		}
		if uid, err := utils.ExtractUserIDFromToken(c, cfg); err == nil {
			attach(c, db, uid)
		}
		return c.Next()
	}
}

func sessionUserID(c *fiber.Ctx, store *session.Store) (uint, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, false
	}
	uid, ok := sess.Get("user_id").(uint)
	return uid, ok
}

func attach(c *fiber.Ctx, db *gorm.DB, uid uint) {
	var user models.User
	if err := db.First(&user, uid).Error; err == nil {
		c.Locals(userKey, &user)
	}
}

// RequireAuth rejects requests that carry no identity.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// CurrentUser returns the identity attached to the request, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
