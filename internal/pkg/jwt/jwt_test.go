package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	Convey("tokens round-trip through generate and validate", t, func() {
		j := NewJWT("test-secret", time.Hour)

		token, err := j.GenerateToken("user-1", "alice")
		So(err, ShouldBeNil)
		So(token, ShouldNotBeEmpty)

		claims, err := j.ValidateToken(token)
		So(err, ShouldBeNil)
		So(claims.UserID, ShouldEqual, "user-1")
		So(claims.Username, ShouldEqual, "alice")

		Convey("a token signed with another secret is invalid", func() {
			other := NewJWT("other-secret", time.Hour)
			_, err := other.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("garbage is invalid", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}

func TestJWT_Expiry(t *testing.T) {
	Convey("an expired token is reported as expired", t, func() {
		j := NewJWT("test-secret", -time.Minute)

		token, err := j.GenerateToken("user-1", "alice")
		So(err, ShouldBeNil)

		_, err = j.ValidateToken(token)
		So(err, ShouldEqual, ErrExpiredToken)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	Convey("refresh tokens are long and unique", t, func() {
		a := GenerateRefreshToken()
		b := GenerateRefreshToken()
		So(len(a), ShouldEqual, 64)
		So(a, ShouldNotEqual, b)
	})
}
