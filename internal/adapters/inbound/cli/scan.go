package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/akeso/akeso/internal/adapters/outbound/tui"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
)

// crawlFlags are shared by every command that walks a directory.
type crawlFlags struct {
	ext      string
	maxDepth int
}

func (f *crawlFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ext, "ext", strings.Join(trimDots(domain.DefaultExtensions), ","), "Comma-separated file extensions to crawl")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", domain.DefaultMaxDepth, "Maximum directory depth to crawl")
}

func (f *crawlFlags) extensions() []string {
	return domain.SplitExtensions(f.ext)
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}

func newScanCmd(env *environment) *cobra.Command {
	var (
		crawl       crawlFlags
		output      string
		showDiff    bool
		diffMode    string
		summaryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "scan <path|->",
		Short: "Audit manifests without modifying them",
		Long: "Audit a file, a directory tree, or standard input (\"-\") and report findings, scores and proposed repairs.\n" +
			"Nothing is written. The exit code is 1 when any file fails or has a proposed repair.",
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

			svc := application.NewScanService(s.engine(domain.DefaultHealOptions()), reporters(), tui.Presenter{Color: colorOutput(cmd.OutOrStdout())}, s.logger)
			outcome, err := svc.Run(application.ScanRequest{
				Path:        path,
				DisplayPath: args[0],
				Extensions:  crawl.extensions(),
				MaxDepth:    crawl.maxDepth,
				Output:      format,
				ShowDiff:    showDiff,
				DiffMode:    mode,
				SummaryOnly: summaryOnly,
				Workspace:   s.workspace,
				CommitHash:  s.commit,
				Threshold:   s.resolver.Threshold(),
			}, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return exitWith(outcome.ExitCode)
		},
	}

	crawl.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, sarif)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show proposed repairs as diffs")
	cmd.Flags().StringVar(&diffMode, "diff-mode", "side-by-side", "Diff presentation (side-by-side, inline)")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "Print only the totals line for directory scans")

	return cmd
}
