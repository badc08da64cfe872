package routes

import (
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store *session.Store, cfg *config.Config) {
	app.Use(middleware.AttachUser(db, store, cfg))
	requireAuth := middleware.RequireAuth()

	// Auth routes
	authController := controllers.NewAuthController(db, store, cfg)
	app.Post("/register", authController.Register)
	app.Post("/login", authController.Login)
	app.Post("/logout", authController.Logout)

	// Admin-only users page (server-rendered)
	usersController := controllers.NewUsersController(db, cfg)
	app.Get("/admin/users", requireAuth, usersController.AdminPage)

	api := app.Group("/api")
	api.Get("/me", requireAuth, authController.Me)

	// Users CRUD
	api.Get("/users", requireAuth, usersController.List)
	api.Post("/users", requireAuth, usersController.Create)
	api.Get("/users/:id", requireAuth, usersController.Get)
	api.Put("/users/:id", requireAuth, usersController.Update)
	api.Delete("/users/:id", requireAuth, usersController.Delete)

	// Public catalog (no auth; identity widens visibility when present)
	catalogController := controllers.NewCatalogController(db, cfg)
	api.Get("/catalog/courses", catalogController.ListCourses)
	api.Get("/catalog/courses/:id", catalogController.GetCourse)

	// Courses CRUD + enrollment
	coursesController := controllers.NewCoursesController(db, cfg)
	api.Get("/courses", requireAuth, coursesController.List)
	api.Get("/my-courses", requireAuth, coursesController.MyCourses)
	api.Post("/courses", requireAuth, coursesController.Create)
	api.Get("/courses/:id", requireAuth, coursesController.Get)
	api.Put("/courses/:id", requireAuth, coursesController.Update)
	api.Delete("/courses/:id", requireAuth, coursesController.Delete)
	api.Post("/courses/:id/enroll", requireAuth, coursesController.Enroll)
	api.Get("/courses/:id/students", requireAuth, coursesController.Students)

	// Lessons CRUD
	lessonsController := controllers.NewLessonsController(db, cfg)
	api.Get("/lessons", requireAuth, lessonsController.List)
	api.Post("/lessons", requireAuth, lessonsController.Create)
	api.Get("/lessons/:id", requireAuth, lessonsController.Get)
	api.Put("/lessons/:id", requireAuth, lessonsController.Update)
	api.Delete("/lessons/:id", requireAuth, lessonsController.Delete)
}
