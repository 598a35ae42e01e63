package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"leetui/internal/app"
	"leetui/internal/config"
	"leetui/internal/devtools"
	"leetui/internal/editor"
	"leetui/internal/event"
	"leetui/internal/leetcode"
	"leetui/internal/telemetry"
	"leetui/internal/ui"
	"leetui/internal/workspace"
)

var version = "dev"

// settleFrames bounds how long the demo lets animations run before printing.
const settleFrames = 120

type options struct {
	configPath string
	logPath    string
	workspace  string
	editor     string
	ascii      bool
	debug      bool
}

// apply lets flags win over the file and the environment.
func (o options) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.LogPath = o.logPath
	}
	if flags.Changed("workspace") {
		cfg.WorkspaceDir = o.workspace
	}
	if flags.Changed("editor") {
		cfg.Editor.Mode = o.editor
	}
	if flags.Changed("ascii") {
		cfg.UI.ASCII = o.ascii
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:           "leetui",
		Short:         "Browse, run and submit LeetCode problems from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.configPath, nil)
			if err != nil {
				return err
			}
			o.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	flags := root.Flags()
	flags.StringVar(&o.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&o.logPath, "log", "", "write JSON logs to this file")
	flags.StringVar(&o.workspace, "workspace", "", "directory holding one folder per problem")
	flags.StringVar(&o.editor, "editor", "", "editor mode: auto, zellij, tmux or exec")
	flags.BoolVar(&o.ascii, "ascii", false, "draw with ASCII characters only")
	flags.BoolVar(&o.debug, "debug", false, "debug logging and layout info in the header")

	root.AddCommand(newVersionCmd(), newDemoCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "leetui", version)
		},
	}
}

// newDemoCmd prints one frame of a canned scenario without credentials or
// network.
func newDemoCmd() *cobra.Command {
	var (
		width, height int
		ascii         bool
		style         string
	)
	cmd := &cobra.Command{
		Use:       "demo [scenario]",
		Short:     "Render a canned screen to stdout",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: devtools.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "home"
			if len(args) == 1 {
				name = args[0]
			}
			m, err := devtools.NewManager(nil).Play(name, width, height)
			if err != nil {
				return err
			}
			r := ui.New(event.NewQueue(1), ui.Options{ASCIIOnly: ascii, StyleVariant: style})
			r.Render(m)
			for i := 0; m.Animating && i < settleFrames; i++ {
				r.Render(m)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Frame())
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 120, "terminal columns")
	cmd.Flags().IntVar(&height, "height", 30, "terminal rows")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "draw with ASCII characters only")
	cmd.Flags().StringVar(&style, "style", "modern_arcade", "modern_arcade, cozy_clean or retro_terminal")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := telemetry.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Close()

	mode, err := editor.ParseMode(cfg.Editor.Mode)
	if err != nil {
		return err
	}
	client := leetcode.NewClient(cfg.Credentials.Session, cfg.Credentials.CSRF,
		leetcode.WithBaseURL(cfg.BaseURL),
		leetcode.WithTimeout(cfg.Network.Timeout),
		leetcode.WithPolling(cfg.Network.PollInterval, cfg.Network.MaxPolls),
	)
	store := workspace.NewStore(cfg.WorkspaceDir)
	launcher := editor.New(mode, cfg.Editor.Command, nil)

	q := event.NewQueue(event.DefaultQueueSize)
	watcher, err := event.NewWatcher(q, 0, logger)
	if err != nil {
		return fmt.Errorf("watch workspace: %w", err)
	}
	defer watcher.Close()

	dispatcher := event.NewDispatcher(q, event.Services{
		Data:    client,
		Files:   store,
		Opener:  launcher,
		Watcher: watcher,
		Logger:  logger,
	}, cfg.Network.Workers)

	model := app.New(dispatcher, logger)
	root := ui.New(q, ui.Options{
		ASCIIOnly:    cfg.UI.ASCII,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		Logger:       logger,
	})
	launcher.SetSuspender(root)
	loop := app.NewLoop(model, q, root)

	logger.Info("main.start", map[string]any{"version": version, "workspace": store.Root(), "editor": string(mode)})

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()
	g.Go(func() error {
		defer cancel()
		return root.Run(runCtx)
	})
	g.Go(func() error {
		defer cancel()
		return loop.Run(runCtx)
	})
	g.Go(func() error { return dispatcher.Run(runCtx) })
	g.Go(func() error { return watcher.Run(runCtx) })
	g.Go(func() error {
		event.RunTicker(runCtx, event.TickInterval, q)
		return nil
	})
	return g.Wait()
}
