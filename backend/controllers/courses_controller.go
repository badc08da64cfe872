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

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

type CreateCourseRequest struct {
	Name    string `json:"name" validate:"required"`
	Topic   string `json:"topic"`
	OwnerID uint   `json:"ownerId"`
}

type UpdateCourseRequest struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// List godoc
// @Summary List courses
// @Description Admin sees every course, everyone else their own
// @Tags courses
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/courses [get]
func (cc *CoursesController) List(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	query := cc.DB.Preload("Owner")
	if caller.Role != models.RoleAdmin {
		query = query.Where("owner_id = ?", caller.ID)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseJSON(course))
	}
	return c.JSON(result)
}

// MyCourses returns the caller's working set with lessons inlined:
// enrolled courses for learners, everything for admins, owned courses
// otherwise.
func (cc *CoursesController) MyCourses(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	query := cc.DB.Preload("Owner")
	switch caller.Role {
	case models.RoleLearner:
		query = query.
			Joins("JOIN course_students ON course_students.course_id = courses.id").
			Where("course_students.user_id = ?", caller.ID)
	case models.RoleAdmin:
		// all courses
	default:
		query = query.Where("owner_id = ?", caller.ID)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		lessons, err := cc.courseLessons(course.ID)
		if err != nil {
			return utils.InternalServerError(c, err.Error())
		}
		entry := courseJSON(course)
		entry["lessons"] = lessons
		result = append(result, entry)
	}
	return c.JSON(result)
}

// Get returns a single course, admin or owner.
func (cc *CoursesController) Get(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	course, err := cc.findCourse(c, "Owner")
	if course == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionRead, policy.Course(course.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}
	return c.JSON(courseJSON(*course))
}

// Students returns the roster, admin or owner only.
func (cc *CoursesController) Students(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	course, err := cc.findCourse(c)
	if course == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionRoster, policy.Course(course.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var students []models.User
	if err := cc.DB.Model(course).Association("Students").Find(&students); err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	result := make([]fiber.Map, 0, len(students))
	for _, s := range students {
		result = append(result, fiber.Map{"id": s.ID, "name": s.Name, "email": s.Email})
	}
	return c.JSON(result)
}

// Create makes a course owned by the caller; an admin may create on behalf
// of another account via ownerId.
func (cc *CoursesController) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if !policy.Allow(caller, policy.ActionCreate, policy.Course(0)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input CreateCourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	ownerID := caller.ID
	if input.OwnerID != 0 && policy.CanSetCourseOwner(caller) {
		ownerID = input.OwnerID
	}

	course := models.Course{Name: input.Name, Topic: input.Topic, OwnerID: ownerID}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    course.ID,
		"name":  course.Name,
		"topic": course.Topic,
		"owner": course.OwnerID,
	})
}

// Enroll adds the caller to the course's student list. Learners only, and
// idempotent: enrolling twice leaves a single row.
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	// role gate comes before the lookup: non-learners get 403 even for a
	// course that does not exist
	if !policy.Allow(caller, policy.ActionEnroll, policy.Course(0)) {
		return utils.Forbidden(c, "Forbidden")
	}
	course, err := cc.findCourse(c)
	if course == nil {
		return err
	}

	var enrolled int64
	cc.DB.Table("course_students").
		Where("course_id = ? AND user_id = ?", course.ID, caller.ID).
		Count(&enrolled)
	if enrolled == 0 {
		if err := cc.DB.Exec(
			"INSERT INTO course_students (course_id, user_id) VALUES (?, ?)",
			course.ID, caller.ID,
		).Error; err != nil {
			return utils.InternalServerError(c, err.Error())
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Update mutates name/topic, admin or owner.
func (cc *CoursesController) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	course, err := cc.findCourse(c)
	if course == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionUpdate, policy.Course(course.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	var input UpdateCourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name != "" {
		course.Name = input.Name
	}
	if input.Topic != "" {
		course.Topic = input.Topic
	}
	if err := cc.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{
		"id":    course.ID,
		"name":  course.Name,
		"topic": course.Topic,
		"owner": course.OwnerID,
	})
}

// Delete removes the course record only; its lessons and enrollment rows
// stay, per policy.Cascades.
func (cc *CoursesController) Delete(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	course, err := cc.findCourse(c)
	if course == nil {
		return err
	}
	if !policy.Allow(caller, policy.ActionDelete, policy.Course(course.OwnerID)) {
		return utils.Forbidden(c, "Forbidden")
	}

	if err := cc.DB.Delete(course).Error; err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true})
}

// findCourse loads the :id course or writes the 400/404 response itself.
func (cc *CoursesController) findCourse(c *fiber.Ctx, preloads ...string) (*models.Course, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid course ID")
	}

	query := cc.DB
	for _, p := range preloads {
		query = query.Preload(p)
	}

	var course models.Course
	if err := query.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Course not found")
		}
		return nil, utils.InternalServerError(c, err.Error())
	}
	return &course, nil
}

func (cc *CoursesController) courseLessons(courseID uint) ([]fiber.Map, error) {
	var lessons []models.Lesson
	err := cc.DB.Where("course_id = ?", courseID).
		Order("sort_order asc, id asc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	result := make([]fiber.Map, 0, len(lessons))
	for _, l := range lessons {
		result = append(result, lessonJSON(l))
	}
	return result, nil
}
