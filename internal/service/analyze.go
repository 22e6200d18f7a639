package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ryo246912/gh-comment-pace/internal/github"
	"github.com/ryo246912/gh-comment-pace/internal/models"
	"github.com/ryo246912/gh-comment-pace/internal/target"
	"github.com/ryo246912/gh-comment-pace/internal/ui"
)

// DefaultConcurrency is the number of PRs analyzed at the same time
const DefaultConcurrency = 8

// Request carries the user input of one run
type Request struct {
	Repository string
	Args       []string
	Additional int
	Minutes    int
	// Pick lets the user choose PRs interactively when Args is empty
	Pick bool
}

// Settings tunes the analysis
type Settings struct {
	Host        string
	Categories  []models.CommentCategory
	Concurrency int
}

// AnalyzeService contains the business logic
type AnalyzeService struct {
	client   github.GitHubClient
	resolver *target.Resolver
	prompter ui.Prompter
	settings Settings
	logger   *slog.Logger
}

// NewAnalyzeService creates a new service instance
func NewAnalyzeService(client github.GitHubClient, resolver *target.Resolver, prompter ui.Prompter, settings Settings, logger *slog.Logger) *AnalyzeService {
	if len(settings.Categories) == 0 {
		settings.Categories = models.AllCategories
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = DefaultConcurrency
	}
	if settings.Host == "" {
		settings.Host = github.DefaultHost
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AnalyzeService{
		client:   client,
		resolver: resolver,
		prompter: prompter,
		settings: settings,
		logger:   logger,
	}
}

// Run handles the complete workflow. Nothing is reported unless every PR
// could be analyzed.
func (s *AnalyzeService) Run(ctx context.Context, req Request) (models.Report, error) {
	user, err := s.client.GetCurrentUser(ctx)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to get current user: %w", err)
	}
	s.logger.Info("analyzing comments", "user", user.Login)

	targets, err := s.resolveTargets(ctx, req, user.Login)
	if err != nil {
		return models.Report{}, err
	}

	counts, err := s.CountPRs(ctx, targets, user.Login)
	if err != nil {
		return models.Report{}, err
	}

	report := BuildReport(user.Login, s.settings.Categories, counts, req.Additional, req.Minutes)
	report.Host = s.settings.Host
	return report, nil
}

func (s *AnalyzeService) resolveTargets(ctx context.Context, req Request, login string) ([]models.PullRequestTarget, error) {
	spec, err := s.resolver.Parse(req.Repository, req.Args)
	if err != nil {
		return nil, err
	}

	if len(req.Args) == 0 {
		if !req.Pick {
			return nil, target.NewInvalidTargetError("", "at least one pull request is required (or use --pick)")
		}
		numbers, err := s.pickNumbers(ctx, spec, login)
		if err != nil {
			return nil, err
		}
		spec.Numbers = numbers
	}

	targets, err := s.resolver.Targets(spec)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolved targets", "mode", spec.Mode.String(), "count", len(targets))
	return targets, nil
}

// pickNumbers lets the user choose among the PRs they commented on
func (s *AnalyzeService) pickNumbers(ctx context.Context, spec target.Spec, login string) ([]int, error) {
	repo, err := s.resolver.Repository(spec)
	if err != nil {
		return nil, err
	}

	prs, err := s.client.SearchCommentedPRs(ctx, repo, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get commented PRs: %w", err)
	}

	numbers, err := s.prompter.SelectPRs(prs)
	if err != nil {
		return nil, fmt.Errorf("failed to select PRs: %w", err)
	}

	confirmed, err := s.prompter.ConfirmSelection(numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm selection: %w", err)
	}
	if !confirmed {
		return nil, fmt.Errorf("PR selection cancelled")
	}
	return numbers, nil
}

// CountPRs analyzes every target concurrently. The first failure aborts the
// run and the other results are discarded. Results keep the order of targets.
func (s *AnalyzeService) CountPRs(ctx context.Context, targets []models.PullRequestTarget, login string) ([]models.PRCommentCounts, error) {
	results := make([]models.PRCommentCounts, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Concurrency)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			counts, err := s.CountPR(gctx, t, login)
			if err != nil {
				return err
			}
			results[i] = counts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountPR fetches every configured category of one PR and counts the
// comments authored by login
func (s *AnalyzeService) CountPR(ctx context.Context, t models.PullRequestTarget, login string) (models.PRCommentCounts, error) {
	categories := s.settings.Categories
	perCategory := make([]int, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			records, err := s.client.ListComments(gctx, t, category)
			if err != nil {
				return fmt.Errorf("failed to analyze PR %s: %w", t, err)
			}
			perCategory[i] = CountByAuthor(records, login)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.PRCommentCounts{}, err
	}

	counts := models.PRCommentCounts{
		Target: t,
		Counts: make(map[models.CommentCategory]int, len(categories)),
	}
	for i, category := range categories {
		counts.Counts[category] = perCategory[i]
	}
	s.logger.Debug("analyzed PR", "pr", t.String(), "comments", counts.Total())
	return counts, nil
}
