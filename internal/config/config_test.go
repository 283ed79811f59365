package config_test

import (
	"testing"

	"github.com/parcferme/gridbook/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.SaveDir, convey.ShouldEqual, "saves")
			convey.So(cfg.DefaultYear, convey.ShouldEqual, 1980)
			convey.So(cfg.MaxSaves, convey.ShouldEqual, 50)
		})
	})
}
