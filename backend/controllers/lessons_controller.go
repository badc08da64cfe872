package controllers

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/policy"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLessonsController(db *gorm.DB, cfg *config.Config) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg}
}

type CreateLessonRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Type        string   `json:"type" validate:"omitempty,oneof=text video document quiz"`
	Order       *int     `json:"order" validate:"required"`
	Course      uint     `json:"course" validate:"required"`
	VideoURL    string   `json:"videoUrl"`
	Attachments []string `json:"attachments"`
	Duration    *int     `json:"duration"`
}

type UpdateLessonRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Type        string   `json:"type" validate:"omitempty,oneof=text video document quiz"`
	Order       *int     `json:"order"`
	VideoURL    string   `json:"videoUrl"`
	Attachments []string `json:"attachments"`
	Duration    *int     `json:"duration"`
	IsPublished *bool    `json:"isPublished"`
}

// List returns the lessons of one course (?course=), sorted by order.
// Teachers see only lessons they own; other roles get the whole course.
func (lc *LessonsController) List(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	courseID := c.QueryInt("course")
	if courseID == 0 {
		return utils.BadRequest(c, "Course id required")
	}

	query := lc.DB.Where("course_id = ?", courseID)
	if caller.Role == models.RoleTeacher {
		query = query.Where("owner_id = ?", caller.ID)
	}

	var lessons []models.Lesson
	if err := query.Order("sort_order asc, id asc").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(lessons))
	for _, l := range lessons {
		result = append(result, lessonJSON(l))
	}
	return c.JSON(result)
}

// Get returns one lesson, admin or the lesson's owner.
func (lc *LessonsController) Get(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	lesson, err := lc.findLesson(c)
	if lesson == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionRead, policy.Lesson(lesson.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}
	return c.JSON(lessonJSON(*lesson))
}

// Create godoc
// @Summary Create a lesson
// @Description Teachers and admins only; the creator becomes the owner
// @Tags lessons
// @Accept json
// @Produce json
// @Param input body CreateLessonRequest true "Lesson data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/lessons [post]
func (lc *LessonsController) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if !policy.Allow(caller, policy.ActionCreate, policy.Lesson(0)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input CreateLessonRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, "Missing fields")
	}

	lessonType := input.Type
	if lessonType == "" {
		lessonType = models.LessonText
	}

	lesson := models.Lesson{
		Title:       input.Title,
		Content:     input.Content,
		Type:        lessonType,
		Order:       *input.Order,
		CourseID:    input.Course,
		OwnerID:     caller.ID,
		VideoURL:    input.VideoURL,
		Attachments: datatypes.JSONSlice[string](input.Attachments),
		Duration:    input.Duration,
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(lessonJSON(lesson))
}

// Update mutates a lesson, admin or owner.
func (lc *LessonsController) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	lesson, err := lc.findLesson(c)
	if lesson == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionUpdate, policy.Lesson(lesson.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input UpdateLessonRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}
	if input.Type != "" {
		lesson.Type = input.Type
	}
	if input.Order != nil {
		lesson.Order = *input.Order
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.Attachments != nil {
		lesson.Attachments = datatypes.JSONSlice[string](input.Attachments)
	}
	if input.Duration != nil {
		lesson.Duration = input.Duration
	}
	if input.IsPublished != nil {
		lesson.IsPublished = *input.IsPublished
	}

	if err := lc.DB.Save(lesson).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(lessonJSON(*lesson))
}

// Delete removes a lesson, admin or owner.
func (lc *LessonsController) Delete(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	lesson, err := lc.findLesson(c)
	if lesson == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionDelete, policy.Lesson(lesson.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	if err := lc.DB.Delete(lesson).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true})
}

// findLesson loads the :id lesson or writes the 400/404 response itself.
func (lc *LessonsController) findLesson(c *fiber.Ctx) (*models.Lesson, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Lesson not found")
		}
		return nil, utils.InternalServerError(c, err.Error())
	}
	return &lesson, nil
}
