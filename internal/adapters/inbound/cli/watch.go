package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/adapters/outbound/tui"
	"github.com/akeso/akeso/internal/adapters/outbound/watcher"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
)

func newWatchCmd(env *environment) *cobra.Command {
	var (
		crawl    crawlFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-scan manifests whenever they change",
		Long:  "Watch a directory tree and print a scan of every manifest that is written, created or renamed. Stop with Ctrl-C.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			s, err := env.session()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			svc := application.NewScanService(s.engine(domain.DefaultHealOptions()), nil, tui.Presenter{Color: colorOutput(out)}, s.logger)
			w := watcher.New(root, watcher.Options{
				Extensions: crawl.extensions(),
				MaxDepth:   crawl.maxDepth,
				Debounce:   debounce,
			}, s.logger)

			fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)\n", root)
			return w.Run(ctx, func(path string) {
				if rel, relErr := filepath.Rel(s.workspace, path); relErr == nil && s.resolver.MatchesPath(filepath.ToSlash(rel)) {
					s.logger.Debug("ignored change", zap.String("path", rel))
					return
				}
				_, scanErr := svc.Run(application.ScanRequest{
					Path:      path,
					Output:    domain.OutputText,
					Workspace: s.workspace,
					Threshold: s.resolver.Threshold(),
				}, nil, out)
				if scanErr != nil {
					s.logger.Error("scan failed", zap.String("path", path), zap.Error(scanErr))
				}
			})
		},
	}

	crawl.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a burst of changes is scanned")

	return cmd
}
