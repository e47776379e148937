package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	gioapp "gioui.org/app"
	"gioui.org/unit"
	"github.com/urfave/cli/v2"

	"github.com/vocdoni/gofirma/eolookup/internal/app"
	"github.com/vocdoni/gofirma/eolookup/internal/appstore"
	eocli "github.com/vocdoni/gofirma/eolookup/internal/cli"
	"github.com/vocdoni/gofirma/eolookup/internal/lookup"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/ui"
	"github.com/vocdoni/gofirma/eolookup/internal/version"
)

func main() {
	cliApp := &cli.App{
		Name:    "eolookup",
		Usage:   "Look up App Store transactions for a customer order id",
		Version: version.Version,
		Flags: []cli.Flag{
			eocli.DebugFlag,
			eocli.SettingsFileFlag,
			eocli.DataDirFlag,
			eocli.APIURLFlag,
			eocli.TimeoutFlag,
		},
		Action: runGUI,
		Commands: []*cli.Command{
			{
				Name:  "lookup",
				Usage: "Run a single lookup without the GUI and print the decoded transactions",
				Flags: []cli.Flag{
					eocli.KeyFileFlag,
					eocli.KeyIDFlag,
					eocli.IssuerIDFlag,
					eocli.BundleIDFlag,
					eocli.OrderIDFlag,
					eocli.EnvironmentFlag,
				},
				Action: runLookup,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(c *cli.Context) (*app.App, error) {
	cfg, err := eocli.NewConfigFromCLI(c)
	if err != nil {
		return nil, err
	}
	logger, err := eocli.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts := []appstore.Option{
		appstore.WithLogger(logger),
		appstore.WithUserAgent("eolookup/" + version.Version),
		appstore.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.APIURL != "" {
		logger.Sugar().Infow("Using custom App Store API URL", "url", cfg.APIURL)
		opts = append(opts, appstore.WithBaseURL(cfg.APIURL))
	}

	return app.NewApp(cfg, logger, lookup.AppStoreFactory(opts...))
}

func runGUI(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	go func() {
		defer a.Logger.Sync() //nolint:errcheck
		w := new(gioapp.Window)
		w.Option(
			gioapp.Title("EOLookup"),
			gioapp.Size(unit.Dp(960), unit.Dp(820)),
		)
		if err := ui.Run(w, a); err != nil {
			a.Logger.Sugar().Fatalw("UI failed", "error", err)
		}
		os.Exit(0)
	}()

	gioapp.Main()
	return nil
}

func runLookup(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Logger.Sync() //nolint:errcheck

	// Flags not given on the command line fall back to the saved form.
	in, err := eocli.FormInputsFromCLI(c, a.Inputs)
	if err != nil {
		return err
	}

	req, err := a.Prepare(in)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return cli.Exit(verr.Message, 2)
		}
		return err
	}

	res := a.Runner.Run(context.Background(), req)
	fmt.Fprintln(c.App.Writer, res.Text)
	if res.Kind != lookup.Success {
		return cli.Exit("", 1)
	}
	return nil
}
