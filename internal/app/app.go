package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/x/explorer"
	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/cli"
	"github.com/vocdoni/gofirma/eolookup/internal/lookup"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/net"
	"github.com/vocdoni/gofirma/eolookup/internal/settings"
	"github.com/vocdoni/gofirma/eolookup/internal/storage"
	"github.com/vocdoni/gofirma/eolookup/internal/version"
)

type Screen int

const (
	ScreenLookup Screen = iota
	ScreenHistory
	ScreenAbout
)

// pickedKeyName is the copy written when the file picker hands back a
// stream instead of a file on disk.
const pickedKeyName = "picked_key.p8"

var ErrLookupInProgress = errors.New("a lookup is already in progress")

type App struct {
	mu            sync.Mutex
	CurrentScreen Screen

	// Services
	Config   *cli.Config
	Logger   *zap.Logger
	History  *storage.HistoryLogger
	Runner   *lookup.Runner
	Explorer *explorer.Explorer

	// Form values loaded from the settings file at startup
	Inputs model.FormInputs

	result     string
	lastResult *lookup.Result

	latestRelease   string
	updateAvailable bool

	Invalidate func()
}

func NewApp(cfg *cli.Config, logger *zap.Logger, newClient lookup.ClientFactory) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create app data dir: %w", err)
	}

	history, err := storage.NewHistoryLogger(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create history logger: %w", err)
	}

	inputs, found := settings.Load(cfg.SettingsFile)
	logger.Sugar().Debugw("Loaded settings", "file", cfg.SettingsFile, "found", found)

	return &App{
		CurrentScreen: ScreenLookup,
		Config:        cfg,
		Logger:        logger,
		History:       history,
		Runner:        lookup.NewRunner(newClient, history, logger),
		Inputs:        inputs,
	}, nil
}

// Prepare validates the form, reads the key and remembers the inputs for the
// next launch. A *model.ValidationError is returned for bad input, in which
// case nothing is persisted.
func (a *App) Prepare(in model.FormInputs) (lookup.Request, error) {
	if err := in.Validate(); err != nil {
		return lookup.Request{}, err
	}
	key, err := in.ReadKey()
	if err != nil {
		return lookup.Request{}, &model.ValidationError{Field: model.FieldKeyFilePath, Message: "Please enter the correct certificate path!"}
	}
	if err := settings.Save(a.Config.SettingsFile, in); err != nil {
		a.Logger.Sugar().Warnw("Failed to save settings", "file", a.Config.SettingsFile, "error", err)
	}
	a.mu.Lock()
	a.Inputs = in
	a.mu.Unlock()
	return lookup.Request{Inputs: in, PrivateKey: key}, nil
}

// KeyPathFromPicker returns a path for the key file chosen in the file
// picker. Desktop pickers return an *os.File and its name is used as is.
// Mobile and web pickers only give a stream, so its bytes are copied into
// the data dir, replacing any previous copy.
func (a *App) KeyPathFromPicker(rc io.Reader) (string, error) {
	if named, ok := rc.(interface{ Name() string }); ok && named.Name() != "" {
		return named.Name(), nil
	}
	key, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read picked key: %w", err)
	}
	path := filepath.Join(a.Config.DataDir, pickedKeyName)
	if err := os.WriteFile(path, key, 0600); err != nil {
		return "", fmt.Errorf("failed to store picked key: %w", err)
	}
	a.Logger.Sugar().Debugw("Stored picked key", "file", path)
	return path, nil
}

// Submit validates synchronously and then runs the lookup in the
// background. The result text is updated when it finishes.
func (a *App) Submit(ctx context.Context, in model.FormInputs) error {
	if a.Runner.Busy() {
		return ErrLookupInProgress
	}
	req, err := a.Prepare(in)
	if err != nil {
		return err
	}

	ch, ok := a.Runner.Start(ctx, req)
	if !ok {
		return ErrLookupInProgress
	}
	a.setResult(lookup.SearchingMessage, nil)

	go func() {
		res := <-ch
		a.setResult(res.Text, &res)
	}()
	return nil
}

func (a *App) setResult(text string, res *lookup.Result) {
	a.mu.Lock()
	a.result = text
	if res != nil {
		a.lastResult = res
	}
	invalidate := a.Invalidate
	a.mu.Unlock()
	if invalidate != nil {
		invalidate()
	}
}

func (a *App) Result() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

func (a *App) LastResult() *lookup.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastResult
}

// Clear empties the result area.
func (a *App) Clear() {
	a.mu.Lock()
	a.lastResult = nil
	a.mu.Unlock()
	a.setResult("", nil)
}

func (a *App) Busy() bool {
	return a.Runner.Busy()
}

func (a *App) CheckForUpdates(ctx context.Context) {
	tag, _, err := net.FetchLatestRelease(ctx, a.Logger)
	if err != nil {
		a.Logger.Sugar().Debugw("Update check failed", "error", err)
		return
	}
	a.mu.Lock()
	a.latestRelease = tag
	a.updateAvailable = version.IsOutdated(version.Version, tag)
	invalidate := a.Invalidate
	a.mu.Unlock()
	if invalidate != nil {
		invalidate()
	}
}

func (a *App) UpdateInfo() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latestRelease, a.updateAvailable
}
