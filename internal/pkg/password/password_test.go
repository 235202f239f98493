package password

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHashAndVerify(t *testing.T) {
	Convey("hashed passwords verify only against the original plaintext", t, func() {
		hash, err := Hash("correct horse battery staple")
		So(err, ShouldBeNil)
		So(strings.HasPrefix(hash, "$2"), ShouldBeTrue)

		So(Verify("correct horse battery staple", hash), ShouldBeTrue)
		So(Verify("wrong password", hash), ShouldBeFalse)
		So(Verify("", hash), ShouldBeFalse)

		Convey("hashing is salted, so equal inputs give distinct hashes", func() {
			again, err := Hash("correct horse battery staple")
			So(err, ShouldBeNil)
			So(again, ShouldNotEqual, hash)
			So(Verify("correct horse battery staple", again), ShouldBeTrue)
		})
	})
}
