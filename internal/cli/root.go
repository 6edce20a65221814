package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/welcomescreen/pkg/buildinfo"
	"github.com/matzehuels/welcomescreen/pkg/errors"
)

// SetVersion sets the version information displayed by --version. It is
// for builds that cannot use ldflags on the buildinfo package.
func SetVersion(v, c, d string) {
	buildinfo.Version = v
	buildinfo.Commit = c
	buildinfo.Date = d
}

// Execute runs the welcomescreen CLI under ctx and returns the first
// command error.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// Example:
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	preRun := root.PersistentPreRun
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		c.SetLogLevel(level)
		if preRun != nil {
			preRun(cmd, args)
		}
	}

	return root.ExecuteContext(ctx)
}

// ErrorMessage formats a command error for the terminal, preferring the
// user-facing message of coded errors.
func ErrorMessage(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeRenderTimeout:
		return "render timed out: " + errors.UserMessage(err)
	case errors.ErrCodeCanceled:
		return "render canceled"
	case "":
		return err.Error()
	}
	return fmt.Sprintf("%s (%s)", errors.UserMessage(err), errors.GetCode(err))
}
