package main

import (
	"context"
	errs "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/notes/static"
	"github.com/oliverisaac/notes/store"
	"github.com/oliverisaac/notes/types"
	"github.com/oliverisaac/notes/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	goli.InitLogrus(logrus.InfoLevel)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "notes",
		Short:        "A single page notepad backed by SQLite",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file to load before reading the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the notes page",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), envFile)
			},
		},
		newListCmd(&envFile),
	)

	return root
}

func loadConfig(envFile string) (types.Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		logrus.Debugf("Not loading env file %s: %v", envFile, err)
	}

	cfg, err := types.ConfigFromEnv(afero.NewOsFs())
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	logrus.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func runServe(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	st := store.New(cfg.DBPath)
	defer st.Close()

	e := newServer(cfg, st)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logrus.Error(errors.Wrap(err, "shutting down server"))
		}
	}()

	logrus.Infof("Serving notes from %s on %s", cfg.DBPath, cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil && !errs.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "starting server")
	}
	return nil
}

func newServer(cfg types.Config, st noteStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Renderer = views.New()
	e.HTTPErrorHandler = errorHandler(e)

	e.StaticFS("/static", static.FS)

	e.Use(middleware.Recover())

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
	}))

	e.GET("/", homePageHandler(cfg, st))
	e.POST("/", createNote(cfg, st))

	return e
}

// errorHandler logs server-side failures with a stack trace before handing
// the response to echo. Client errors such as unknown routes are not logged.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var httpErr *echo.HTTPError
		if !errs.As(err, &httpErr) || httpErr.Code >= http.StatusInternalServerError {
			logrus.WithField("stack", goerrors.Wrap(err, 1).ErrorStack()).Error(err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
