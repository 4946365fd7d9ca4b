package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/adapters/outbound/config"
	"github.com/akeso/akeso/internal/adapters/outbound/gitinfo"
	"github.com/akeso/akeso/internal/adapters/outbound/reporter"
	"github.com/akeso/akeso/internal/adapters/outbound/store"
	"github.com/akeso/akeso/internal/application"
	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

// environment resolves the process-wide settings shared by every command.
type environment struct {
	viper  *viper.Viper
	git    *gitinfo.GitInfoAdapter
	logger *zap.Logger
}

func newEnvironment(v *viper.Viper) *environment {
	return &environment{viper: v, git: gitinfo.New()}
}

// Logger builds the logger once from --log-level and --log-format.
func (e *environment) Logger() (*zap.Logger, error) {
	if e.logger != nil {
		return e.logger, nil
	}
	logger, err := logging.NewFactory().CreateLogger(
		logging.Level(e.viper.GetString("log-level")),
		logging.Format(e.viper.GetString("log-format")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	e.logger = logger
	return logger, nil
}

// Workspace resolves --workspace, falling back to the git root and then cwd.
func (e *environment) Workspace() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return e.git.ResolveWorkspace(e.viper.GetString("workspace"), cwd), nil
}

// session is everything a job needs once the workspace is known.
type session struct {
	workspace string
	commit    string
	logger    *zap.Logger
	resolver  *config.Resolver
	store     *store.Store
}

func (e *environment) session() (*session, error) {
	logger, err := e.Logger()
	if err != nil {
		return nil, err
	}
	ws, err := e.Workspace()
	if err != nil {
		return nil, err
	}
	st := store.New(ws, logger)
	if err := st.EnsureWorkspace(); err != nil {
		return nil, err
	}
	ws = st.Workspace()

	resolver := config.New(logger)
	resolver.Load(ws)

	commit, err := e.git.CommitHash(ws)
	if err != nil {
		logger.Debug("no commit hash for workspace", zap.String("workspace", ws), zap.Error(err))
	}

	return &session{
		workspace: ws,
		commit:    commit,
		logger:    logger,
		resolver:  resolver,
		store:     st,
	}, nil
}

func (s *session) engine(opts domain.HealOptions) *application.HealEngine {
	return application.NewHealEngine(s.store, s.resolver, opts, s.logger)
}

func reporters() map[domain.OutputFormat]domain.Reporter {
	return map[domain.OutputFormat]domain.Reporter{
		domain.OutputJSON:  reporter.NewJSON(version),
		domain.OutputSARIF: reporter.NewSARIF(version),
	}
}

// inputPath makes path absolute unless it selects standard input.
func inputPath(path string) (string, error) {
	if path == application.StdinPath {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// warnIfTerminal logs a hint when stream input would block on a terminal.
func warnIfTerminal(in io.Reader, logger *zap.Logger) {
	f, ok := in.(*os.File)
	if !ok {
		return
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		logger.Warn("reading manifest from a terminal, end input with Ctrl-D")
	}
}

// colorOutput reports whether w is a terminal that should get highlighted
// output. NO_COLOR disables it.
func colorOutput(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
