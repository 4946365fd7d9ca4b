package cli

import (
	"github.com/spf13/cobra"

	"github.com/akeso/akeso/internal/adapters/outbound/tui"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
)

func newHealCmd(env *environment) *cobra.Command {
	var (
		crawl    crawlFlags
		dryRun   bool
		noBackup bool
		output   string
		showDiff bool
		diffMode string
	)

	cmd := &cobra.Command{
		Use:   "heal <path|->",
		Short: "Repair manifests in place",
		Long: "Apply every automatic repair to a file or directory tree, keeping a .akeso.backup copy of each changed file.\n" +
			"With \"-\" the repaired content of standard input is written to standard output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := domain.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			mode, err := domain.ParseDiffMode(diffMode)
			if err != nil {
				return err
			}
			path, err := inputPath(args[0])
			if err != nil {
				return err
			}

			s, err := env.session()
			if err != nil {
				return err
			}
			if path == application.StdinPath {
				warnIfTerminal(cmd.InOrStdin(), s.logger)
			}

			opts := domain.DefaultHealOptions()
			opts.Backup = !noBackup

			svc := application.NewHealService(s.engine(opts), reporters(), tui.Presenter{Color: colorOutput(cmd.OutOrStdout())}, s.logger)
			outcome, err := svc.Run(application.HealRequest{
				Path:       path,
				Extensions: crawl.extensions(),
				MaxDepth:   crawl.maxDepth,
				DryRun:     dryRun,
				Output:     format,
				ShowDiff:   showDiff,
				DiffMode:   mode,
				Workspace:  s.workspace,
				CommitHash: s.commit,
				Threshold:  s.resolver.Threshold(),
			}, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return exitWith(outcome.ExitCode)
		},
	}

	crawl.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not keep a backup of changed files")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, sarif)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show applied repairs as diffs")
	cmd.Flags().StringVar(&diffMode, "diff-mode", "side-by-side", "Diff presentation (side-by-side, inline)")

	return cmd
}
