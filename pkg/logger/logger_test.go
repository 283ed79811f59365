package logger_test

import (
	"context"
	"testing"

	"github.com/parcferme/gridbook/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		log := logger.Get()
		ctx := context.Background()

		Convey("Then logging at every level does not panic", func() {
			So(func() {
				log.Debug(ctx, "debug", logger.String("k", "v"))
				log.Info(ctx, "info", logger.Int("year", 1980))
				log.Warn(ctx, "warn", logger.Any("rec", map[string]any{"a": 1}))
				log.Error(ctx, "error", logger.Err(nil))
			}, ShouldNotPanic)
		})

		Convey("Then named loggers derive without affecting the parent", func() {
			named := log.Named("dataset")
			So(named, ShouldNotBeNil)
			So(func() { named.Info(ctx, "loaded") }, ShouldNotPanic)
		})

		Convey("Then level strings parse case-insensitively", func() {
			So(logger.SetLevelString("DEBUG"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("Then Sync is a no-op", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}
