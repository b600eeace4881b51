package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "taskscout",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "collection", Required: true},
					&cli.StringFlag{Name: "when"},
				},
			},
		},
	}

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"taskscout", "search", "--collection", "inbox", "report"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("description or when is required", func(t *testing.T) {
		err := app.Run([]string{"taskscout", "search", "--db", t.TempDir(), "--collection", "inbox"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description")
	})
}

func TestSeedCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "taskscout",
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
				},
			},
		},
	}

	t.Run("seed file is required", func(t *testing.T) {
		err := app.Run([]string{"taskscout", "seed", "--db", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "seed file")
	})

	t.Run("missing seed file errors", func(t *testing.T) {
		err := app.Run([]string{"taskscout", "seed", "--db", t.TempDir(), "/nonexistent/seed.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading seed file")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			app := &cli.App{
				Name: "test",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: "info"},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}
			err := app.Run([]string{"test", "--log-level", level})
			require.NoError(t, err, "level %s", level)
		}
	})

	t.Run("invalid level errors", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		err := app.Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level enables debug logging", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				assert.True(t, slog.Default().Enabled(c.Context, slog.LevelDebug))
				return nil
			},
		}
		err := app.Run([]string{"test", "--log-level", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
