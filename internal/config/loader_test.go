package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parcferme/gridbook/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"GRIDBOOK_CONFIG",
		"GRIDBOOK_ADDR",
		"GRIDBOOK_LOG_LEVEL",
		"GRIDBOOK_DATA_DIR",
		"GRIDBOOK_SAVE_DIR",
		"GRIDBOOK_DEFAULT_YEAR",
		"GRIDBOOK_MAX_SAVES",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.DefaultYear, convey.ShouldEqual, 1980)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("GRIDBOOK_ADDR", ":8099")
			_ = os.Setenv("GRIDBOOK_DATA_DIR", "/srv/gridbook/data")
			_ = os.Setenv("GRIDBOOK_DEFAULT_YEAR", "1975")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8099")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/gridbook/data")
				convey.So(cfg.DefaultYear, convey.ShouldEqual, 1975)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":7070\"\nlog_level: debug\nmax_saves: 5\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("GRIDBOOK_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxSaves, convey.ShouldEqual, 5)
			})

			convey.Convey("And env still beats the file", func() {
				_ = os.Setenv("GRIDBOOK_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("GRIDBOOK_CONFIG", "/does/not/exist.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When validation fails", func() {
			clearConfigEnvVars()
			_ = os.Setenv("GRIDBOOK_ADDR", " ")
			defer clearConfigEnvVars()

			// A whitespace addr passes through koanf but a blank one is
			// rejected by validation.
			_ = os.Setenv("GRIDBOOK_MAX_SAVES", "0")
			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
