package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"statusboard/internal/config"
	"statusboard/internal/models"
)

const (
	githubBaseURL   = "https://api.github.com"
	githubUserAgent = "statusboard-dashboard"
	githubSource    = "GitHub"
	githubRepoLimit = 5
)

// githubRepo is the subset of the GitHub repository object we read.
type githubRepo struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	HTMLURL     string     `json:"html_url"`
	PushedAt    *time.Time `json:"pushed_at"`
	Stars       int        `json:"stargazers_count"`
	Language    *string    `json:"language"`
}

// GitHubService lists a user's most recently updated repositories.
type GitHubService struct {
	baseURL     string
	token       string
	defaultUser string
	timeout     time.Duration
	client      *http.Client
	log         *slog.Logger
}

// NewGitHubService creates a GitHubService from the loaded configuration.
func NewGitHubService(cfg config.Config, log *slog.Logger) *GitHubService {
	return &GitHubService{
		baseURL:     githubBaseURL,
		token:       cfg.GitHubToken,
		defaultUser: cfg.GitHubUsername,
		timeout:     cfg.SourceTimeout,
		client:      &http.Client{},
		log:         log,
	}
}

// Configured reports whether a default username is set.
func (s *GitHubService) Configured() bool {
	return s.defaultUser != ""
}

// Repos returns up to five repositories for user, falling back to the
// configured default when user is blank.
func (s *GitHubService) Repos(ctx context.Context, user string) models.Result[[]models.RepoSummary] {
	user = strings.TrimSpace(user)
	if user == "" {
		user = s.defaultUser
	}
	if user == "" {
		serr := models.ConfigError("GitHub username not configured", "Set GITHUB_USERNAME or pass ?user=<name>")
		logFailure(s.log, "github", serr)
		return models.Fail[[]models.RepoSummary](serr)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", strconv.Itoa(githubRepoLimit))
	endpoint := s.baseURL + "/users/" + url.PathEscape(user) + "/repos?" + q.Encode()

	header := http.Header{}
	header.Set("User-Agent", githubUserAgent)
	header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}

	var repos []githubRepo
	if serr := getJSON(ctx, s.client, githubSource, endpoint, header, &repos); serr != nil {
		logFailure(s.log, "github", serr)
		return models.Fail[[]models.RepoSummary](serr)
	}

	if len(repos) > githubRepoLimit {
		repos = repos[:githubRepoLimit]
	}
	out := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		out = append(out, models.RepoSummary{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			PushedAt:    r.PushedAt,
			Stars:       r.Stars,
			Language:    r.Language,
		})
	}
	return models.Ok(out)
}
