package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akeso/akeso/internal/adapters/outbound/config"
	"github.com/akeso/akeso/internal/adapters/outbound/store"
	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/domain/rules"
)

func newInitCmd(env *environment) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .akeso.yaml configuration file",
		Long:  "Create a .akeso.yaml with the built-in defaults in the workspace, or in dir when given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := env.Logger()
			if err != nil {
				return err
			}

			var dir string
			if len(args) > 0 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			} else if dir, err = env.Workspace(); err != nil {
				return err
			}

			configFileName := config.FileNames[0]
			dest := filepath.Join(dir, configFileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			content, err := generateConfig()
			if err != nil {
				return err
			}

			st := store.New(dir, logger)
			if err := st.EnsureWorkspace(); err != nil {
				return err
			}
			if err := st.AtomicWrite(dest, content); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .akeso.yaml")

	return cmd
}

func generateConfig() (string, error) {
	var body bytes.Buffer
	enc := yaml.NewEncoder(&body)
	enc.SetIndent(2)
	if err := enc.Encode(domain.DefaultConfig()); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("# akeso configuration\n")
	b.WriteString("# rules.threshold is the minimum score (0-100) a file needs to pass.\n")
	b.WriteString("# rules.ignore takes path globs and rule ids.\n\n")
	b.Write(body.Bytes())
	b.WriteString("\n# Built-in rules:\n")
	for _, r := range rules.Default() {
		fmt.Fprintf(&b, "#   %-22s %-8s %s\n", r.ID(), r.Severity(), r.Description())
	}
	return b.String(), nil
}
