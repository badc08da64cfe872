package controllers

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/policy"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the public course browse: no session required,
// but a present identity widens lesson visibility per the policy.
type CatalogController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCatalogController(db *gorm.DB, cfg *config.Config) *CatalogController {
	return &CatalogController{DB: db, Cfg: cfg}
}

// ListCourses lists every course for anyone.
func (cat *CatalogController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cat.DB.Preload("Owner").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseJSON(course))
	}
	return c.JSON(result)
}

// GetCourse returns one course with its lessons. Unpublished lessons are
// visible only to the course owner and admins; lesson content is never part
// of the catalog projection.
func (cat *CatalogController) GetCourse(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cat.DB.Preload("Owner").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, err.Error())
	}

	isEnrolled := false
	if caller != nil {
		var n int64
		cat.DB.Table("course_students").
			Where("course_id = ? AND user_id = ?", course.ID, caller.ID).
			Count(&n)
		isEnrolled = n > 0
	}

	query := cat.DB.Where("course_id = ?", course.ID)
	if !policy.CanSeeUnpublished(caller, course.OwnerID) {
		query = query.Where("is_published = ?", true)
	}

	var lessons []models.Lesson
	if err := query.Order("sort_order asc, id asc").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	lessonList := make([]fiber.Map, 0, len(lessons))
	for _, l := range lessons {
		lessonList = append(lessonList, catalogLessonJSON(l))
	}

	entry := courseJSON(course)
	entry["isEnrolled"] = isEnrolled
	entry["lessons"] = lessonList
	return c.JSON(entry)
}
