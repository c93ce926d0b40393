package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT_AccessToken(t *testing.T) {
	Convey("Access Token 签发与验证", t, func() {
		j := NewJWT("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

		Convey("签发后应能验证并取回Claims", func() {
			token, err := j.GenerateAccessToken("user-1", []string{"AUTHOR", "USER"})
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			claims, err := j.ValidateAccessToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
			So(claims.Roles, ShouldResemble, []string{"AUTHOR", "USER"})
		})

		Convey("错误密钥签发的Token应验证失败", func() {
			other := NewJWT("wrong-secret", "refresh-secret", time.Hour, 24*time.Hour)
			token, err := other.GenerateAccessToken("user-1", nil)
			So(err, ShouldBeNil)

			_, err = j.ValidateAccessToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期Token应返回ErrExpiredToken", func() {
			expired := NewJWT("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
			token, err := expired.GenerateAccessToken("user-1", nil)
			So(err, ShouldBeNil)

			_, err = j.ValidateAccessToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("乱码字符串应验证失败", func() {
			_, err := j.ValidateAccessToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}

func TestJWT_RefreshToken(t *testing.T) {
	Convey("Refresh Token 签发与验证", t, func() {
		j := NewJWT("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

		Convey("签发后应能验证并取回用户ID", func() {
			token, err := j.GenerateRefreshToken("user-1")
			So(err, ShouldBeNil)

			userID, err := j.ValidateRefreshToken(token)
			So(err, ShouldBeNil)
			So(userID, ShouldEqual, "user-1")
		})

		Convey("Access Token 不能当 Refresh Token 用", func() {
			token, err := j.GenerateAccessToken("user-1", []string{"USER"})
			So(err, ShouldBeNil)

			_, err = j.ValidateRefreshToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期的 Refresh Token 应返回ErrExpiredToken", func() {
			expired := NewJWT("access-secret", "refresh-secret", time.Hour, -time.Minute)
			token, err := expired.GenerateRefreshToken("user-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateRefreshToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})
	})
}
