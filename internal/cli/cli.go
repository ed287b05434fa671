package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/legcfg/internal/app"
	"github.com/vk/legcfg/internal/export"
	"github.com/vk/legcfg/internal/publish"
)

// AssetsDirEnv names the environment variable that supplies the default
// asset root.
const AssetsDirEnv = "ISAACLAB_ASSETS_DATA_DIR"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList is a repeatable string flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("legcfg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
legcfg - Articulation configs for DeepRobotics legged robots.

Usage:
  legcfg [options] [ROBOT ...]

Arguments:
  ROBOT
    Name of a robot in the catalog. With none given, every robot is used.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaultAssets := os.Getenv(AssetsDirEnv)
	if defaultAssets == "" {
		defaultAssets = "assets"
	}

	var configPaths pathList
	assetsFlag := flagSet.String("assets-dir", defaultAssets, "Root directory of the USD assets (default from $"+AssetsDirEnv+").")
	flagSet.Var(&configPaths, "config", "Path to a robot .hcl file or directory. Repeatable.")
	flagSet.Var(&configPaths, "c", "Path to a robot .hcl file or directory (shorthand).")
	formatFlag := flagSet.String("format", export.DefaultFormat, "Output format. Options: "+strings.Join(export.Formats(), ", ")+".")
	primPathFlag := flagSet.String("prim-path", "", "Scene prim path to set on the rendered robots.")
	checkFlag := flagSet.Bool("check", false, "Print the integrity report and exit 1 if any robot fails.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP catalog server. 0 is disabled.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to publish the robots to.")
	publishNamespaceFlag := flagSet.String("publish-namespace", "/", "socket.io namespace to publish on.")
	publishEventFlag := flagSet.String("publish-event", publish.DefaultEvent, "Event name used when publishing.")
	publishAckFlag := flagSet.String("publish-ack", "", "Event to wait for after each published robot.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", publish.DefaultTimeout, "Connection and acknowledgement timeout.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		AssetsDir:        *assetsFlag,
		ConfigPaths:      configPaths,
		Robots:           flagSet.Args(),
		Format:           strings.ToLower(*formatFlag),
		PrimPath:         *primPathFlag,
		Check:            *checkFlag,
		ServePort:        *servePortFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNamespaceFlag,
		PublishEvent:     *publishEventFlag,
		PublishAck:       *publishAckFlag,
		PublishTimeout:   *publishTimeoutFlag,
		PublishInsecure:  *publishInsecureFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
