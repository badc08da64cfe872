package controllers

import (
	"strconv"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
)

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(id), err
}

func userJSON(u models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func courseJSON(course models.Course) fiber.Map {
	return fiber.Map{
		"id":    course.ID,
		"name":  course.Name,
		"topic": course.Topic,
		"owner": ownerJSON(course.Owner, course.OwnerID),
	}
}

// ownerJSON tolerates a missing preload and falls back to the bare id.
func ownerJSON(owner models.User, ownerID uint) fiber.Map {
	if owner.ID == 0 {
		return fiber.Map{"id": ownerID}
	}
	return fiber.Map{
		"id":    owner.ID,
		"name":  owner.Name,
		"email": owner.Email,
	}
}

func lessonJSON(l models.Lesson) fiber.Map {
	return fiber.Map{
		"id":          l.ID,
		"title":       l.Title,
		"content":     l.Content,
		"type":        l.Type,
		"order":       l.Order,
		"course":      l.CourseID,
		"owner":       l.OwnerID,
		"videoUrl":    l.VideoURL,
		"attachments": l.Attachments,
		"duration":    l.Duration,
		"isPublished": l.IsPublished,
		"createdAt":   l.CreatedAt,
		"updatedAt":   l.UpdatedAt,
	}
}

// catalogLessonJSON is the public projection: no content, the lesson body
// stays behind enrollment on the course pages.
func catalogLessonJSON(l models.Lesson) fiber.Map {
	return fiber.Map{
		"id":          l.ID,
		"title":       l.Title,
		"type":        l.Type,
		"order":       l.Order,
		"duration":    l.Duration,
		"videoUrl":    l.VideoURL,
		"attachments": l.Attachments,
		"isPublished": l.IsPublished,
	}
}
