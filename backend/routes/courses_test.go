package routes

import (
	"fmt"
	"testing"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCreateOwnerDefaultsToCaller(t *testing.T) {
	teacher := createAccount(t, models.RoleTeacher)

	resp := doJSON(t, "POST", "/api/courses",
		map[string]string{"name": "Go Basics", "topic": "programming"}, bearer(t, teacher))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.Equal(t, float64(teacher.ID), result["owner"])
}

func TestCourseCreateAdminMayPickOwner(t *testing.T) {
	admin := createAccount(t, models.RoleAdmin)
	teacher := createAccount(t, models.RoleTeacher)

	resp := doJSON(t, "POST", "/api/courses",
		map[string]interface{}{"name": "Assigned Course", "ownerId": teacher.ID}, bearer(t, admin))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(teacher.ID), decodeMap(t, resp)["owner"])

	// a non-admin supplying ownerId still becomes the owner themselves
	resp = doJSON(t, "POST", "/api/courses",
		map[string]interface{}{"name": "Not Assigned", "ownerId": admin.ID}, bearer(t, teacher))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(teacher.ID), decodeMap(t, resp)["owner"])
}

func TestCourseUpdateDeleteOwnerOrAdmin(t *testing.T) {
	admin := createAccount(t, models.RoleAdmin)
	owner := createAccount(t, models.RoleTeacher)
	other := createAccount(t, models.RoleTeacher)
	course := createCourse(t, owner, "Guarded Course")
	target := fmt.Sprintf("/api/courses/%d", course.ID)

	resp := doJSON(t, "PUT", target, map[string]string{"name": "Nope"}, bearer(t, other))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, "DELETE", target, nil, bearer(t, other))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, "PUT", target, map[string]string{"name": "Renamed"}, bearer(t, owner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", decodeMap(t, resp)["name"])

	resp = doJSON(t, "PUT", target, map[string]string{"topic": "updated"}, bearer(t, admin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "DELETE", target, nil, bearer(t, admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "GET", target, nil, bearer(t, admin))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCourseReadOwnerOrAdmin(t *testing.T) {
	owner := createAccount(t, models.RoleTeacher)
	learner := createAccount(t, models.RoleLearner)
	course := createCourse(t, owner, "Private View")

	resp := doJSON(t, "GET", fmt.Sprintf("/api/courses/%d", course.ID), nil, bearer(t, learner))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, "GET", fmt.Sprintf("/api/courses/%d", course.ID), nil, bearer(t, owner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Private View", decodeMap(t, resp)["name"])
}

func TestEnrollLearnersOnlyAndIdempotent(t *testing.T) {
	owner := createAccount(t, models.RoleTeacher)
	learner := createAccount(t, models.RoleLearner)
	course := createCourse(t, owner, "Popular Course")
	target := fmt.Sprintf("/api/courses/%d/enroll", course.ID)

	// the role must be exactly learner
	resp := doJSON(t, "POST", target, nil, bearer(t, owner))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, "POST", target, nil, bearer(t, learner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, "POST", target, nil, bearer(t, learner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "re-enrolling is a no-op, not an error")

	roster := doJSON(t, "GET", fmt.Sprintf("/api/courses/%d/students", course.ID), nil, bearer(t, owner))
	require.Equal(t, fiber.StatusOK, roster.StatusCode)
	students := decodeList(t, roster)
	require.Len(t, students, 1)
	assert.Equal(t, learner.Email, students[0].(map[string]interface{})["email"])
}

func TestEnrollMissingCourse(t *testing.T) {
	learner := createAccount(t, models.RoleLearner)

	resp := doJSON(t, "POST", "/api/courses/999999/enroll", nil, bearer(t, learner))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRosterOwnerOrAdminOnly(t *testing.T) {
	owner := createAccount(t, models.RoleTeacher)
	other := createAccount(t, models.RoleTeacher)
	course := createCourse(t, owner, "Roster Course")

	resp := doJSON(t, "GET", fmt.Sprintf("/api/courses/%d/students", course.ID), nil, bearer(t, other))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCourseListScopedByRole(t *testing.T) {
	owner := createAccount(t, models.RoleTeacher)
	other := createAccount(t, models.RoleTeacher)
	course := createCourse(t, owner, "Scoped Course")

	resp := doJSON(t, "GET", "/api/courses", nil, bearer(t, owner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	names := courseNames(decodeList(t, resp))
	assert.Contains(t, names, course.Name)

	resp = doJSON(t, "GET", "/api/courses", nil, bearer(t, other))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, courseNames(decodeList(t, resp)), course.Name)
}

func TestMyCoursesForLearner(t *testing.T) {
	owner := createAccount(t, models.RoleTeacher)
	learner := createAccount(t, models.RoleLearner)
	course := createCourse(t, owner, "Enrolled Course")
	createLesson(t, owner, course, "Lesson One", 1, false)

	resp := doJSON(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), nil, bearer(t, learner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "GET", "/api/my-courses", nil, bearer(t, learner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := decodeList(t, resp)
	require.Len(t, courses, 1)
	entry := courses[0].(map[string]interface{})
	assert.Equal(t, course.Name, entry["name"])
	assert.Len(t, entry["lessons"], 1)
}

func courseNames(entries []interface{}) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.(map[string]interface{})["name"].(string))
	}
	return names
}
