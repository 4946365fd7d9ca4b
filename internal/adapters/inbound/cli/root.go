package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
)

// EnvPrefix prefixes the environment variables bound to global flags,
// e.g. AKESO_WORKSPACE or AKESO_LOG_LEVEL.
const EnvPrefix = "AKESO"

// ExitError carries a non-zero exit code out of a command that already
// reported its outcome. It is not printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// exitWith turns a job exit code into the command error.
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "akeso",
		Short:         "Audit and heal Kubernetes manifests",
		Long:          "akeso scores YAML manifests against text-level rules, shows the repairs it would make, and applies them safely with backups and atomic writes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("workspace", "", "Workspace root (defaults to the enclosing git work tree, then the current directory)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, structured)")
	_ = v.BindPFlags(flags)

	env := newEnvironment(v)
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(env))
	cmd.AddCommand(newHealCmd(env))
	cmd.AddCommand(newInitCmd(env))
	cmd.AddCommand(newWatchCmd(env))
	cmd.AddCommand(newMCPCmd(env))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
