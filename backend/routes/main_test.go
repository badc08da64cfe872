package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{JWTSecret: "testsecret", ServerPort: "3000"}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	// in-memory session storage, views resolved relative to this package
	store := utils.NewSessionStore(nil)
	engine := html.New("../views", ".html")
	app = fiber.New(fiber.Config{Views: engine})
	SetupRoutes(app, db, store, cfg)
}

var accountSeq int

// createAccount inserts an account directly; the password is always
// "password".
func createAccount(t *testing.T, role string) models.User {
	t.Helper()
	accountSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         fmt.Sprintf("account-%d", accountSeq),
		Email:        fmt.Sprintf("account-%d@example.com", accountSeq),
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, owner models.User, name string) models.Course {
	t.Helper()
	course := models.Course{Name: name, Topic: "testing", OwnerID: owner.ID}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createLesson(t *testing.T, owner models.User, course models.Course, title string, order int, published bool) models.Lesson {
	t.Helper()
	lesson := models.Lesson{
		Title:       title,
		Content:     "content of " + title,
		Type:        models.LessonText,
		Order:       order,
		CourseID:    course.ID,
		OwnerID:     owner.ID,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(user.ID, cfg)
	require.NoError(t, err)
	return token
}

// doJSON performs a request against the test app; token may be empty for
// anonymous calls.
func doJSON(t *testing.T, method, target string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	var result []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
