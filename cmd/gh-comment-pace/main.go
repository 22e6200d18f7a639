package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-comment-pace/internal/config"
	"github.com/ryo246912/gh-comment-pace/internal/github"
	"github.com/ryo246912/gh-comment-pace/internal/service"
	"github.com/ryo246912/gh-comment-pace/internal/target"
	"github.com/ryo246912/gh-comment-pace/internal/ui"
)

type options struct {
	token      string
	minutes    int
	repository string
	additional int
	categories []string
	configPath string
	pick       bool
	jsonOutput bool
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gh-comment-pace [flags] [PR_NUMBER... | PR_URL...]",
		Short: "Count your comments on pull requests and compute minutes per comment",
		Long: `Counts the comments the authenticated user wrote on the given pull requests
(review comments, reviews and conversation comments) and divides the time
spent by that count.

PRs are given as numbers together with --repository (owner/repo or a
repository URL), as numbers alone (the repository is detected from the git
remote of the current directory), or as full pull request URLs.`,
		Example: `  gh-comment-pace -m 90 -r acme/widgets 12 15
  gh-comment-pace -m 90 https://github.com/acme/widgets/pull/12
  gh-comment-pace -m 45 -a 3 --categories review_comments 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd.Context(), opts, args, stdout, stderr)
		},
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.token, "token", "t", "", "GitHub personal access token (defaults to GH_COMMENT_PACE_TOKEN, GITHUB_TOKEN, GH_TOKEN or gh auth)")
	flags.IntVarP(&opts.minutes, "minutes", "m", 0, "Total time spent in minutes")
	flags.StringVarP(&opts.repository, "repository", "r", "", "Repository as owner/repo or https://github.com/owner/repo (auto-detected from git remote if omitted)")
	flags.IntVarP(&opts.additional, "additional", "a", 0, "Additional comment count added to the total")
	flags.StringSliceVarP(&opts.categories, "categories", "c", nil, "Comment categories to count: review_comments, reviews, issue_comments")
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	flags.BoolVar(&opts.pick, "pick", false, "Pick PRs you commented on interactively when none are given")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output and HTTP traffic to stderr")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func runCommand(ctx context.Context, opts *options, args []string, stdout, stderr io.Writer) error {
	if opts.minutes < 0 {
		return fmt.Errorf("--minutes must not be negative")
	}
	if opts.additional < 0 {
		return fmt.Errorf("--additional must not be negative")
	}

	logger := newLogger(stderr, opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if len(opts.categories) > 0 {
		cfg.Categories = opts.categories
	}
	categories, err := cfg.CommentCategories()
	if err != nil {
		return err
	}

	token, err := cfg.ResolveToken(opts.token)
	if err != nil {
		return err
	}

	clientOpts := github.Options{
		Host:      cfg.Host,
		BaseURL:   cfg.APIURL,
		Token:     token,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		PageSize:  cfg.PageSize,
		MaxPages:  cfg.MaxPages,
		Logger:    logger,
	}
	if opts.verbose {
		clientOpts.HTTPLog = stderr
	}

	// Initialize GitHub client
	client, err := github.NewClient(clientOpts)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Create service with dependency injection
	analyzeService := service.NewAnalyzeService(
		client,
		target.NewResolver(cfg.Host),
		&ui.DefaultPrompter{},
		service.Settings{
			Host:        cfg.Host,
			Categories:  categories,
			Concurrency: cfg.Concurrency,
		},
		logger,
	)

	report, err := analyzeService.Run(ctx, service.Request{
		Repository: opts.repository,
		Args:       args,
		Additional: opts.additional,
		Minutes:    opts.minutes,
		Pick:       opts.pick,
	})
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return ui.RenderJSON(stdout, report)
	}
	return ui.RenderReport(stdout, report)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
