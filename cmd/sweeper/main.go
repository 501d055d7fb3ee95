package main

import (
	"context"
	"embed"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/gridfall/sweeper-server/internal/config"
	"github.com/gridfall/sweeper-server/internal/database"
	"github.com/gridfall/sweeper-server/internal/settings"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	log = logrus.New()

	logPath      string
	settingsPath string
)

func init() {
	flag.StringVar(&logPath, "log", "", "also log to this file (rotated)")
	flag.StringVar(&settingsPath, "settings", "sweeper.db",
		"path to the preferences database")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logPath == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()
	setupLogging()

	jwt, err := config.NewJWT()
	if err != nil {
		log.Fatal("unable to load JWT keys: ", err)
	}
	cookies := config.NewCookies(jwt)

	db, err := database.ConnectAndMigrate(mainCtx, migrations)
	if err != nil {
		log.Fatal("unable to connect to database: ", err)
	}
	defer db.Close()

	prefs, err := settings.Open(settingsPath)
	if err != nil {
		log.Fatal("unable to open preferences store: ", err)
	}
	defer prefs.Close()

	addr := config.Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: buildHandler(db, jwt, cookies, prefs),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
