package target

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

// Mode tells how the PRs of a run were specified
type Mode int

const (
	// ModeDetectNumbers: bare numbers, repository taken from the local git remote
	ModeDetectNumbers Mode = iota
	// ModeSlugNumbers: bare numbers plus an owner/repo slug
	ModeSlugNumbers
	// ModeURLNumbers: bare numbers plus a repository URL
	ModeURLNumbers
	// ModePRURLs: every argument is a full PR URL
	ModePRURLs
)

func (m Mode) String() string {
	switch m {
	case ModeDetectNumbers:
		return "detect+numbers"
	case ModeSlugNumbers:
		return "slug+numbers"
	case ModeURLNumbers:
		return "url+numbers"
	case ModePRURLs:
		return "pr-urls"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Spec is the parsed, not yet resolved, target specification.
// Numbers is set for the number modes, URLs for ModePRURLs.
type Spec struct {
	Mode       Mode
	Repository string
	Numbers    []int
	URLs       []models.PullRequestTarget
}

// Detector returns the repository of the working directory
type Detector func() (models.Repository, error)

// Resolver turns CLI input into pull request targets
type Resolver struct {
	Host   string
	Detect Detector
}

// NewResolver creates a resolver for host that auto-detects the repository
// from git remotes
func NewResolver(host string) *Resolver {
	return &Resolver{Host: host, Detect: CurrentRepository(host)}
}

// Parse classifies the input. args may be empty, in which case the caller
// is expected to pick PRs some other way.
func (r *Resolver) Parse(repositoryFlag string, args []string) (Spec, error) {
	spec := Spec{Repository: strings.TrimSpace(repositoryFlag)}

	var urls, numbers []string
	for _, arg := range args {
		if IsURL(arg) {
			urls = append(urls, arg)
		} else {
			numbers = append(numbers, arg)
		}
	}
	if len(urls) > 0 && len(numbers) > 0 {
		return Spec{}, NewInvalidTargetError(strings.Join(args, " "), "cannot mix PR numbers and PR URLs")
	}

	if len(urls) > 0 {
		spec.Mode = ModePRURLs
		for _, u := range urls {
			t, err := ParsePullRequestURL(u, r.Host)
			if err != nil {
				return Spec{}, err
			}
			spec.URLs = append(spec.URLs, t)
		}
		return spec, nil
	}

	switch {
	case spec.Repository == "":
		spec.Mode = ModeDetectNumbers
	case IsURL(spec.Repository):
		spec.Mode = ModeURLNumbers
	default:
		spec.Mode = ModeSlugNumbers
	}
	for _, arg := range numbers {
		n, err := ParseNumber(arg)
		if err != nil {
			return Spec{}, err
		}
		spec.Numbers = append(spec.Numbers, n)
	}
	return spec, nil
}

// Repository returns the repository the numbers of spec refer to
func (r *Resolver) Repository(spec Spec) (models.Repository, error) {
	switch spec.Mode {
	case ModeSlugNumbers, ModeURLNumbers:
		return ParseRepository(spec.Repository, r.Host)
	case ModeDetectNumbers:
		if r.Detect == nil {
			return models.Repository{}, NewRepositoryError("", "no repository given and auto-detection is unavailable")
		}
		repo, err := r.Detect()
		if err != nil {
			return models.Repository{}, fmt.Errorf("%w (use --repository to set it explicitly)", err)
		}
		return repo, nil
	case ModePRURLs:
		if len(spec.URLs) == 0 {
			return models.Repository{}, NewRepositoryError("", "no pull request URLs")
		}
		first := spec.URLs[0]
		return models.Repository{Host: r.Host, Owner: first.Owner, Name: first.Repo}, nil
	default:
		return models.Repository{}, NewRepositoryError("", "unknown target mode "+spec.Mode.String())
	}
}

// Targets resolves spec into the list of PRs to analyze. Duplicates are
// dropped, keeping the first occurrence.
func (r *Resolver) Targets(spec Spec) ([]models.PullRequestTarget, error) {
	var targets []models.PullRequestTarget
	if spec.Mode == ModePRURLs {
		targets = spec.URLs
	} else {
		repo, err := r.Repository(spec)
		if err != nil {
			return nil, err
		}
		for _, n := range spec.Numbers {
			t, err := models.NewPullRequestTarget(repo.Owner, repo.Name, n)
			if err != nil {
				return nil, NewInvalidTargetError(fmt.Sprint(n), err.Error())
			}
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return nil, NewInvalidTargetError("", "at least one pull request is required")
	}
	return Dedupe(targets), nil
}

// Dedupe drops repeated targets, keeping order
func Dedupe(targets []models.PullRequestTarget) []models.PullRequestTarget {
	seen := make(map[models.PullRequestTarget]struct{}, len(targets))
	out := make([]models.PullRequestTarget, 0, len(targets))
	for _, t := range targets {
		key := models.PullRequestTarget{Owner: strings.ToLower(t.Owner), Repo: strings.ToLower(t.Repo), Number: t.Number}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CurrentRepository detects the repository from GH_REPO or the git remotes
// of the working directory
func CurrentRepository(host string) Detector {
	return func() (models.Repository, error) {
		repo, err := repository.Current()
		if err != nil {
			return models.Repository{}, NewRepositoryError("", "failed to detect repository from git remote: "+err.Error())
		}
		if !sameHost(repo.Host, host) {
			return models.Repository{}, NewRepositoryError(repo.Host+"/"+repo.Owner+"/"+repo.Name, "only "+host+" repositories are supported")
		}
		return models.Repository{Host: strings.ToLower(host), Owner: repo.Owner, Name: repo.Name}, nil
	}
}
