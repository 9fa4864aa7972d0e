package models

import "time"

// RepoSummary is a normalized GitHub repository. Description, PushedAt and
// Language stay nil when GitHub reports null.
type RepoSummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	URL         string     `json:"url"`
	PushedAt    *time.Time `json:"pushedAt"`
	Stars       int        `json:"stars"`
	Language    *string    `json:"language"`
}
