package platform

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// ReposClient wraps the repository browsing API.
type ReposClient struct {
	c *client
}

// NewReposClient builds the client. No network I/O happens here.
func NewReposClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*ReposClient, error) {
	c, err := newClient("repos", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &ReposClient{c: c}, nil
}

// Repo is a browsable repository.
type Repo struct {
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch"`
}

// Branch is one ref in a repository.
type Branch struct {
	Name   string `json:"name"`
	Commit string `json:"commit"`
}

// File is a fetched file's content plus metadata.
type File struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// ListRepos returns the browsable repositories.
func (r *ReposClient) ListRepos(ctx context.Context) ([]Repo, error) {
	var wire struct {
		Value []Repo `json:"value"`
	}
	if err := r.c.getJSON(ctx, "repo-list", "/api/repos", nil, &wire); err != nil {
		return nil, fmt.Errorf("listing repos: %w", err)
	}
	return wire.Value, nil
}

// ListBranches returns the branches of one repository.
func (r *ReposClient) ListBranches(ctx context.Context, repo string) ([]Branch, error) {
	var wire struct {
		Value []struct {
			Name   string `json:"name"`
			Commit struct {
				ID string `json:"id"`
			} `json:"commit"`
		} `json:"value"`
	}
	path := "/api/repos/" + url.PathEscape(repo) + "/branches"
	if err := r.c.getJSON(ctx, "repo-branches", path, nil, &wire); err != nil {
		return nil, fmt.Errorf("listing branches of %s: %w", repo, err)
	}

	branches := make([]Branch, 0, len(wire.Value))
	for _, b := range wire.Value {
		branches = append(branches, Branch{Name: b.Name, Commit: b.Commit.ID})
	}
	return branches, nil
}

// GetFile fetches one file at ref. The wire content is base64; the
// shaped result is decoded text.
func (r *ReposClient) GetFile(ctx context.Context, repo, ref, path string) (*File, error) {
	q := url.Values{}
	q.Set("path", path)
	if ref != "" {
		q.Set("ref", ref)
	}

	var wire struct {
		Path    string `json:"path"`
		Size    int64  `json:"size"`
		Content string `json:"content"`
	}
	target := "/api/repos/" + url.PathEscape(repo) + "/items"
	if err := r.c.getJSON(ctx, "repo-file", target, q, &wire); err != nil {
		return nil, fmt.Errorf("fetching %s from %s: %w", path, repo, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(wire.Content)
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s: %w", path, err)
	}
	return &File{Path: wire.Path, Size: wire.Size, Content: string(decoded)}, nil
}
