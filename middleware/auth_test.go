package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/utils"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		user := utils.GetUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.UserID, "role": user.Role})
	})
	return r
}

func TestAuthMiddlewareAcceptsGeneratedToken(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(42, models.RoleStudent)
	assert.NoError(err)

	r := newAuthTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), `"id":42`)
	assert.Contains(w.Body.String(), `"role":"student"`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	assert := assert.New(t)

	r := newAuthTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(http.StatusUnauthorized, w.Code)
	assert.Contains(w.Body.String(), "Authorization header is required")
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	assert := assert.New(t)

	r := newAuthTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
	assert.Contains(w.Body.String(), "Invalid token format")
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("JWT_SECRET", "other-secret")

	token, err := utils.GenerateToken(42, models.RoleStudent)
	assert.NoError(err)

	// The verifying side uses a different secret.
	t.Setenv("JWT_SECRET", "test-secret")

	r := newAuthTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
	assert.Contains(w.Body.String(), "Invalid token")
}

func TestRequireRoles(t *testing.T) {
	assert := assert.New(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin-only", func(c *gin.Context) {
		c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: 7, Role: models.RoleStudent})
	}, RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/student-only", func(c *gin.Context) {
		c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: 7, Role: models.RoleStudent})
	}, RequireRoles(models.RoleStudent), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/anonymous", RequireRoles(models.RoleStudent), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	assert.Equal(http.StatusForbidden, w.Code)
	assert.Contains(w.Body.String(), "Insufficient permissions")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/student-only", nil))
	assert.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anonymous", nil))
	assert.Equal(http.StatusUnauthorized, w.Code)
}
