package style

import (
	"testing"

	"github.com/aiko-cli/aiko/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestAccent(t *testing.T) {
	Convey("Accents follow the theme", t, func() {
		So(AccentFor("purple").Primary, ShouldEqual, Mauve)
		So(AccentFor("LIGHT").Primary, ShouldEqual, Latte)
		So(AccentFor("neon"), ShouldResemble, AccentFor("ORANGE"))

		viper.Set(key.UITheme, "PURPLE")
		Reset(func() { viper.Set(key.UITheme, "ORANGE") })
		So(CurrentAccent().Secondary, ShouldEqual, Lavender)
	})
}
