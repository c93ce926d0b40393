package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"moonpages/internal/pkg/ctxutil"
	"moonpages/internal/pkg/jwt"
)

func newAuthTestRouter(jwtUtil *jwt.JWT) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwtUtil), func(c *gin.Context) {
		ident, _ := ctxutil.GetIdentity(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": ident.UserID})
	})
	r.GET("/admin-only", Auth(jwtUtil), RequireRole("ADMIN"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	Convey("Auth 中间件", t, func() {
		jwtUtil := jwt.NewJWT("test-secret", "test-refresh", time.Hour, 24*time.Hour)
		router := newAuthTestRouter(jwtUtil)

		Convey("缺少 Authorization header 应返回401", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("非 Bearer 格式应返回401", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Basic abc123")
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("非法Token应返回401", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer not-a-token")
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("合法Token应放行并注入身份", func() {
			token, err := jwtUtil.GenerateAccessToken("user-1", []string{"USER"})
			So(err, ShouldBeNil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "user-1")
		})
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	Convey("RequireRole 中间件", t, func() {
		jwtUtil := jwt.NewJWT("test-secret", "test-refresh", time.Hour, 24*time.Hour)
		router := newAuthTestRouter(jwtUtil)

		Convey("缺少目标角色应返回403", func() {
			token, err := jwtUtil.GenerateAccessToken("user-1", []string{"USER", "AUTHOR"})
			So(err, ShouldBeNil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("具备目标角色应放行", func() {
			token, err := jwtUtil.GenerateAccessToken("admin-1", []string{"ADMIN"})
			So(err, ShouldBeNil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}
