// Package registry discovers installable skills in a GitHub repository.
//
// A skill is a directory under the registry root that contains a SKILL.md
// document with a frontmatter header. Discovery uses the GitHub contents API
// and plain HTTP downloads of the raw files; there is no retry logic, errors
// surface to the caller.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/runger/skillet/internal/config"
	"github.com/runger/skillet/internal/manifest"
)

// defaultBaseURL is the GitHub REST API endpoint.
const defaultBaseURL = "https://api.github.com"

// maxFileSize caps a single downloaded file. Skills are documents, not
// binaries; anything larger is a registry mistake.
const maxFileSize = 10 << 20

// ErrSkillNotFound is returned when a named skill does not exist in the
// registry.
var ErrSkillNotFound = errors.New("skill not found in registry")

// Skill is one installable entry discovered in the registry.
type Skill struct {
	Name        string // Frontmatter name
	Dir         string // Directory path inside the repository
	Description string
	Version     string
}

// File is one downloaded file of a skill.
type File struct {
	Name string
	Data []byte
}

// Client talks to a single skill registry.
type Client struct {
	baseURL string
	owner   string
	repo    string
	ref     string
	root    string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// New creates a registry client for the configured repository.
func New(cfg config.RegistryConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: defaultBaseURL,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		ref:     cfg.Ref,
		root:    cfg.Root,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Source returns the human-readable origin of this registry, recorded in
// install receipts.
func (c *Client) Source() string {
	s := c.owner + "/" + c.repo
	if c.ref != "" {
		s += "@" + c.ref
	}
	return s
}

// contentEntry is the subset of the GitHub contents API response we use.
type contentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// List discovers every skill under the registry root, ordered by name.
// Directories without a SKILL.md are skipped; a SKILL.md with a broken
// header fails the listing so registry mistakes are visible, not silent.
func (c *Client) List(ctx context.Context) ([]Skill, error) {
	entries, err := c.contents(ctx, c.root)
	if err != nil {
		return nil, fmt.Errorf("list registry %s: %w", c.Source(), err)
	}

	var skills []Skill
	for _, e := range entries {
		if e.Type != "dir" {
			continue
		}
		sk, err := c.describe(ctx, e.Path)
		if err != nil {
			if errors.Is(err, errNoSkillFile) {
				c.log.Debug("skipping directory without SKILL.md", "path", e.Path)
				continue
			}
			return nil, err
		}
		skills = append(skills, sk)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

// Get returns the named skill, or ErrSkillNotFound.
func (c *Client) Get(ctx context.Context, name string) (Skill, error) {
	skills, err := c.List(ctx)
	if err != nil {
		return Skill{}, err
	}
	for _, sk := range skills {
		if sk.Name == name {
			return sk, nil
		}
	}
	return Skill{}, fmt.Errorf("%q: %w", name, ErrSkillNotFound)
}

// Fetch downloads every file of a skill, SKILL.md included, ordered by name.
func (c *Client) Fetch(ctx context.Context, sk Skill) ([]File, error) {
	entries, err := c.contents(ctx, sk.Dir)
	if err != nil {
		return nil, fmt.Errorf("fetch skill %s: %w", sk.Name, err)
	}

	var files []File
	for _, e := range entries {
		if e.Type != "file" || e.DownloadURL == "" {
			continue
		}
		data, err := c.download(ctx, e.DownloadURL)
		if err != nil {
			return nil, fmt.Errorf("fetch skill %s: %s: %w", sk.Name, e.Name, err)
		}
		files = append(files, File{Name: e.Name, Data: data})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("fetch skill %s: directory is empty", sk.Name)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

var errNoSkillFile = errors.New("no SKILL.md")

// describe reads a directory's SKILL.md and builds the Skill entry from its
// frontmatter.
func (c *Client) describe(ctx context.Context, dir string) (Skill, error) {
	entries, err := c.contents(ctx, dir)
	if err != nil {
		return Skill{}, err
	}

	for _, e := range entries {
		if e.Type != "file" || e.Name != "SKILL.md" {
			continue
		}
		data, err := c.download(ctx, e.DownloadURL)
		if err != nil {
			return Skill{}, fmt.Errorf("%s: %w", e.Path, err)
		}
		m, err := manifest.Parse(e.Path, data)
		if err != nil {
			return Skill{}, err
		}
		return Skill{
			Name:        m.Name,
			Dir:         dir,
			Description: m.Hint(),
			Version:     m.Version,
		}, nil
	}

	return Skill{}, errNoSkillFile
}

// contents calls the GitHub contents API for one directory.
func (c *Client) contents(ctx context.Context, path string) ([]contentEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, strings.TrimPrefix(path, "/"))
	if c.ref != "" {
		u += "?ref=" + url.QueryEscape(c.ref)
	}

	body, err := c.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode contents of %s: %w", path, err)
	}
	return entries, nil
}

// download retrieves a raw file by its download URL.
func (c *Client) download(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL, "")
}

func (c *Client) get(ctx context.Context, u, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "skillet")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("registry request", "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	return body, nil
}
