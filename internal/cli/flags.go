package cli

import "github.com/urfave/cli/v2"

var (
	DebugFlag = &cli.BoolFlag{
		Name:    "debug",
		Usage:   "Enable development logging",
		EnvVars: []string{"EOLOOKUP_DEBUG"},
	}

	SettingsFileFlag = &cli.StringFlag{
		Name:    "settings-file",
		Usage:   "Path of the file remembering the last submitted form (default: <temp dir>/eoconfig.json)",
		EnvVars: []string{"EOLOOKUP_SETTINGS_FILE"},
	}

	DataDirFlag = &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory holding the lookup history (default: ~/.eolookup)",
		EnvVars: []string{"EOLOOKUP_DATA_DIR"},
	}

	APIURLFlag = &cli.StringFlag{
		Name:    "api-url",
		Usage:   "Override the App Store Server API base URL (e.g. http://localhost:8080 for tools/mockstore)",
		EnvVars: []string{"EOLOOKUP_API_URL"},
	}

	TimeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Usage:   "HTTP timeout for the lookup request, 0 disables it",
		EnvVars: []string{"EOLOOKUP_TIMEOUT"},
	}

	KeyFileFlag = &cli.StringFlag{
		Name:  "key-file",
		Usage: "Path to the SubscriptionKey_XXXX.p8 private key",
	}

	KeyIDFlag = &cli.StringFlag{
		Name:  "key-id",
		Usage: "Key id of the private key",
	}

	IssuerIDFlag = &cli.StringFlag{
		Name:  "issuer-id",
		Usage: "Issuer id from App Store Connect",
	}

	BundleIDFlag = &cli.StringFlag{
		Name:  "bundle-id",
		Usage: "Bundle id of the app",
	}

	OrderIDFlag = &cli.StringFlag{
		Name:  "order-id",
		Usage: "Order id from the customer's App Store receipt email",
	}

	EnvironmentFlag = &cli.StringFlag{
		Name:  "environment",
		Usage: "Production or Sandbox",
	}
)
