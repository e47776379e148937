package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/settings"
)

const dataDirName = ".eolookup"

type Config struct {
	Debug        bool
	SettingsFile string
	DataDir      string
	APIURL       string
	Timeout      time.Duration
}

func NewConfigFromCLI(c *cli.Context) (*Config, error) {
	cfg := &Config{
		Debug:        c.Bool(DebugFlag.Name),
		SettingsFile: c.String(SettingsFileFlag.Name),
		DataDir:      c.String(DataDirFlag.Name),
		APIURL:       c.String(APIURLFlag.Name),
		Timeout:      c.Duration(TimeoutFlag.Name),
	}
	if cfg.SettingsFile == "" {
		cfg.SettingsFile = settings.DefaultPath()
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, dataDirName)
	}
	return cfg, nil
}

// FormInputsFromCLI overlays the lookup flags that were set on top of base.
func FormInputsFromCLI(c *cli.Context, base model.FormInputs) (model.FormInputs, error) {
	in := base
	if c.IsSet(KeyFileFlag.Name) {
		in.KeyFilePath = c.String(KeyFileFlag.Name)
	}
	if c.IsSet(KeyIDFlag.Name) {
		in.KeyID = c.String(KeyIDFlag.Name)
	}
	if c.IsSet(IssuerIDFlag.Name) {
		in.IssuerID = c.String(IssuerIDFlag.Name)
	}
	if c.IsSet(BundleIDFlag.Name) {
		in.BundleID = c.String(BundleIDFlag.Name)
	}
	if c.IsSet(OrderIDFlag.Name) {
		in.OrderID = c.String(OrderIDFlag.Name)
	}
	if c.IsSet(EnvironmentFlag.Name) {
		env, err := model.ParseEnvironment(c.String(EnvironmentFlag.Name))
		if err != nil {
			return in, err
		}
		in.Environment = env
	}
	return in, nil
}

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
