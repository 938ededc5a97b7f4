package main

import (
	"embed"
	"os"
	goruntime "runtime"

	"tiktok-desktop/internal/app"
	"tiktok-desktop/internal/config"
	"tiktok-desktop/internal/infrastructure/errors"
	"tiktok-desktop/internal/infrastructure/logging"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var icon []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewDefaultLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	errors.SetDefaultRetryLogger(logger)

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logging.LogShellError(logger, err, "new_app", nil)
		os.Exit(1)
	}

	if err := app.ConfigureWebview(goruntime.GOOS, cfg.UserAgent); err != nil {
		logger.Warn("Failed to set the webview user agent", "error", err)
	}

	r, g, b := cfg.BackgroundRGB()

	err = wails.Run(&options.App{
		Title:            cfg.Title,
		Width:            cfg.Width,
		Height:           cfg.Height,
		DisableResize:    false,
		Fullscreen:       false,
		Frameless:        false,
		StartHidden:      false,
		BackgroundColour: &options.RGBA{R: r, G: g, B: b, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:                     application.ApplicationMenu(),
		Logger:                   logging.NewWailsLoggerAdapter(logger),
		LogLevel:                 logging.WailsLogLevel(cfg.LogLevel),
		LogLevelProduction:       logging.WailsLogLevel(cfg.LogLevel),
		OnStartup:                application.Startup,
		OnDomReady:               application.DomReady,
		OnBeforeClose:            application.BeforeClose,
		OnShutdown:               application.Shutdown,
		WindowStartState:         options.Normal,
		EnableDefaultContextMenu: false,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               cfg.SingleInstanceID,
			OnSecondInstanceLaunch: application.SecondInstance,
		},
		Debug: options.Debug{
			OpenInspectorOnStartup: cfg.Debug,
		},
		// Windows platform specific options
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
			ZoomFactor:           1.0,
		},
		// Mac platform specific options
		Mac: &mac.Options{
			Appearance: mac.NSAppearanceNameDarkAqua,
			About: &mac.AboutInfo{
				Title:   cfg.Title,
				Message: "A desktop shell for TikTok",
				Icon:    icon,
			},
		},
		// Linux platform specific options
		Linux: &linux.Options{
			Icon:             icon,
			WebviewGpuPolicy: linux.WebviewGpuPolicyOnDemand,
			ProgramName:      cfg.AppID,
		},
	})

	if err != nil {
		logger.Error("Application exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) logging.Logger {
	if cfg.LogFormat == "console" {
		return logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)
	}
	return logging.NewLogger(os.Stderr, cfg.LogLevel)
}
