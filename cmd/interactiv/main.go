package main

/*
#include <stdlib.h>
*/
import "C" // required for the c-shared build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/interactiv/extension/internal/actions"
	"github.com/interactiv/extension/internal/cache"
	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/internal/game"
	"github.com/interactiv/extension/internal/handlers"
	"github.com/interactiv/extension/internal/influx"
	"github.com/interactiv/extension/internal/logging"
	"github.com/interactiv/extension/internal/monitor"
	"github.com/interactiv/extension/internal/props"
	"github.com/interactiv/extension/internal/scheduler"
	"github.com/interactiv/extension/internal/session"
	"github.com/interactiv/extension/internal/storage"
	"github.com/interactiv/extension/pkg/hostinterface"

	"github.com/rs/zerolog"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtensionVersion string = "0.0.1"
	BuildDate               string = "unknown"

	ExtensionName string = "interactiv"
)

// file paths
var (
	// GameDir is the folder of the game executable. This is checked in init().
	GameDir string

	// ModulePath is the absolute path to this library file.
	ModulePath string

	// AddonFolder holds the config, props file, logs and journal. It is the
	// folder of this library unless that is the game folder, in which case a
	// sub folder named after the extension is used.
	AddonFolder string

	LogFilePath string
	LogFile     *os.File
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger is used by the storage, database and influx layers
	ZLogger zerolog.Logger

	SessionStartTime time.Time = time.Now()

	sessionCtx *session.Context
	models     = cache.NewModelCache()
	catalog    = props.NewCatalog(nil)

	// Services
	eventDispatcher *dispatcher.Dispatcher
	handlerService  *handlers.Service
	actionService   *actions.Service
	monitorService  *monitor.Service
	influxManager   *influx.Manager

	storageBackend storage.Backend
)

// init is run automatically when the module is loaded
func init() {
	var err error

	GameDir, err = hostinterface.GetGameDir()
	if err != nil {
		panic(err)
	}

	ModulePath = hostinterface.GetModulePath()
	AddonFolder = filepath.Dir(ModulePath)
	if ModulePath == "" || AddonFolder == GameDir {
		AddonFolder = filepath.Join(GameDir, ExtensionName)
	}
	if err := os.MkdirAll(AddonFolder, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create addon folder: %v\n", err)
	}

	sessionCtx = session.NewContext(CurrentExtensionVersion)

	SlogManager = logging.NewSlogManager()
	SlogManager.SetContext(sessionCtx.Attrs)
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if err := config.Load(AddonFolder); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	setupLogging()

	Logger.Info("Starting InteractiV", "version", CurrentExtensionVersion, "build", BuildDate, "addon", AddonFolder)

	if err := setupHostInterface(); err != nil {
		Logger.Error("Failed to set up host interface!", "error", err)
		panic(err)
	}

	if runningAsExecutable() {
		Logger.Debug("Running as executable, plugin services not started")
		return
	}
	initStorage()
	startServices()
}

// resolvePath makes config paths relative to the addon folder.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(AddonFolder, p)
}

func setupLogging() {
	var err error

	LogFilePath = logging.LogFilePath(resolvePath(config.GetString("logsDir")), ExtensionName, SessionStartTime)
	LogFile, err = logging.OpenLogFile(LogFilePath)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	var gelfWriter logging.MessageWriter
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGelfWriter(gl.Address)
		if err != nil {
			Logger.Error("Failed to connect to Graylog", "error", err, "address", gl.Address)
		} else {
			gelfWriter = w
		}
	}

	level := config.GetString("logLevel")
	if LogFile != nil {
		SlogManager.Setup(LogFile, level, gelfWriter)
		ZLogger = logging.NewZerolog(LogFile, level)
	} else {
		SlogManager.Setup(nil, level, gelfWriter)
		ZLogger = logging.NewZerolog(os.Stdout, level)
	}
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)
}

func setupHostInterface() (err error) {
	hostinterface.SetVersion(CurrentExtensionVersion)

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(ZLogger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	registerLifecycleHandlers(eventDispatcher)

	hostinterface.SetDispatcher(eventDispatcher)
	hostinterface.SetErrorHandler(func(command string, err error) {
		Logger.Error("Host event failed", "command", command, "error", err)
	})
	return nil
}

func initStorage() {
	var err error

	cfg := config.GetStorageConfig()
	cfg.Memory.OutputDir = resolvePath(cfg.Memory.OutputDir)
	cfg.SQLite.DumpPath = resolvePath(cfg.SQLite.DumpPath)

	storageBackend, err = storage.NewBackend(cfg, config.GetDBConfig(), ZLogger)
	if err != nil {
		Logger.Error("Failed to create storage backend, journal disabled", "error", err, "type", cfg.Type)
		storageBackend = nil
		return
	}
	if err = storageBackend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend, journal disabled", "error", err, "type", cfg.Type)
		storageBackend = nil
		return
	}
	Logger.Info("Storage initialized", "type", cfg.Type)
}

// startJournalSession opens the journal once the props are loaded so the
// session row carries them. Later changes go through :SESSION:UPDATE:.
func startJournalSession() {
	if storageBackend == nil {
		return
	}
	s := sessionCtx.Get()
	if err := storageBackend.StartSession(&s); err != nil {
		Logger.Error("Failed to start journal session", "error", err)
	}
}

func startServices() {
	sched := scheduler.New(Logger)
	g := game.New(hostinterface.Natives(), sched,
		game.WithModelCache(models),
		game.WithLogger(Logger),
	)
	g.Register(eventDispatcher)

	actionDeps := actions.Dependencies{
		Dispatcher: eventDispatcher,
		SessionID:  sessionCtx.ID,
		Logger:     Logger,
	}
	if storageBackend != nil {
		actionDeps.Recorder = storageBackend
	}
	actionService = actions.New(actionDeps)
	actionService.Register()

	propsPath := resolvePath(config.GetString("props.file"))
	handlerService = handlers.NewService(handlers.Dependencies{
		Dispatcher:       eventDispatcher,
		World:            g,
		Scheduler:        sched,
		Catalog:          catalog,
		Session:          sessionCtx,
		Actions:          actionService,
		Backend:          storageBackend,
		Models:           models,
		Logger:           Logger,
		PropsPath:        propsPath,
		Scan:             config.GetScanConfig(),
		Slash:            config.GetSlashConfig(),
		ExtensionVersion: CurrentExtensionVersion,
		BuildDate:        BuildDate,
	})
	handlerService.Register()
	handlerService.Reload(propsPath)
	startJournalSession()

	monitorDeps := monitor.Dependencies{
		Status:    handlerService.Status,
		StatusDir: AddonFolder,
		Interval:  config.GetDuration("monitor.interval"),
		Logger:    Logger,
	}
	if j, ok := storageBackend.(storage.PerformanceRecorder); ok {
		monitorDeps.Journal = j
	}
	if cfg := config.GetInfluxConfig(); cfg.Enabled {
		influxManager = influx.NewManager(cfg, ZLogger, resolvePath(filepath.Join("journal", "influx_backup.lp.gz")))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := influxManager.Connect(ctx); err != nil {
			Logger.Warn("InfluxDB unavailable, writing points to backup", "error", err)
		}
		cancel()
		monitorDeps.Influx = influxManager
	}
	monitorService = monitor.NewService(monitorDeps)
	monitorService.Start()
}

func registerLifecycleHandlers(d *dispatcher.Dispatcher) {
	d.Register(":GETDIR:GAME:", func(e dispatcher.Event) (any, error) {
		return GameDir, nil
	})

	d.Register(":GETDIR:MODULE:", func(e dispatcher.Event) (any, error) {
		return ModulePath, nil
	})

	d.Register(":GETDIR:LOG:", func(e dispatcher.Event) (any, error) {
		return LogFilePath, nil
	})

	d.Register(":LOGLEVEL:", func(e dispatcher.Event) (any, error) {
		if len(e.Args) > 0 {
			SlogManager.SetLevel(e.Args[0])
		}
		return SlogManager.Level().String(), nil
	})

	d.Register(":SHUTDOWN:", func(e dispatcher.Event) (any, error) {
		shutdown()
		return "ok", nil
	})
}

// shutdown drains queued actions, closes the journal session and releases
// every connection.
func shutdown() {
	Logger.Info("Shutting down")

	if monitorService != nil {
		monitorService.Stop()
	}
	if eventDispatcher != nil {
		eventDispatcher.Close()
	}

	if storageBackend != nil {
		s := sessionCtx.Get()
		if err := storageBackend.UpdateSession(&s); err != nil {
			Logger.Error("Failed to update journal session", "error", err)
		}
		if err := storageBackend.EndSession(); err != nil {
			Logger.Error("Failed to end journal session", "error", err)
		}
		if exp, ok := storageBackend.(storage.Exporter); ok && exp.ExportedFilePath() != "" {
			Logger.Info("Journal exported", "path", exp.ExportedFilePath())
		}
		if err := storageBackend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}

	if influxManager != nil {
		if err := influxManager.Close(); err != nil {
			Logger.Error("Failed to close InfluxDB client", "error", err)
		}
	}

	SlogManager.Close()
	if LogFile != nil {
		LogFile.Close()
	}
}
