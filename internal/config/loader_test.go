package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/debtfx/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Output, convey.ShouldEqual, "debt_vs_purchasing_power.gif")
				convey.So(cfg.DPI, convey.ShouldEqual, 50)
				convey.So(cfg.RenderWorkers, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("DEBTFX_ADDR", ":8080")
			t.Setenv("DEBTFX_FRAME_PAUSE_MS", "250")
			t.Setenv("DEBTFX_WIDTH_IN", "12.5")
			t.Setenv("DEBTFX_DATA_DIR", "/srv/debtfx")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FramePauseMS, convey.ShouldEqual, 250)
				convey.So(cfg.WidthIn, convey.ShouldEqual, 12.5)
				convey.So(cfg.DebtPath(), convey.ShouldEqual, filepath.Join("/srv/debtfx", "central_government_debt.xlsx"))
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			clearConfigEnvVars(t)
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
first_year: 2000
last_year: 2010
frames_dir: "out/frames"
`)
			t.Setenv("DEBTFX_CONFIG", tmpFile)
			t.Setenv("DEBTFX_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FirstYear, convey.ShouldEqual, 2000)
				convey.So(cfg.LastYear, convey.ShouldEqual, 2010)
				convey.So(cfg.FramesDir, convey.ShouldEqual, "out/frames")
				convey.So(cfg.EuroAdoptionYear, convey.ShouldEqual, 1998)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			t.Setenv("DEBTFX_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)
			t.Setenv("DEBTFX_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a reversed year range", func() {
			clearConfigEnvVars(t)
			t.Setenv("DEBTFX_FIRST_YEAR", "2022")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid number", func() {
			clearConfigEnvVars(t)
			t.Setenv("DEBTFX_DPI", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// clearConfigEnvVars removes every DEBTFX_ variable for the duration of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
