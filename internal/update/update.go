// Package update checks GitHub for newer fcgen releases and caches results.
//
// The caller launches Check in a goroutine with a cancellable context;
// cancellation aborts the HTTP request when the command finishes before
// the check completes.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// cacheTTL is how long a cached check result is considered fresh.
	cacheTTL = 24 * time.Hour

	// httpTimeout bounds the GitHub API request.
	httpTimeout = 5 * time.Second

	defaultAPIBase = "https://api.github.com"
)

// Checker performs release checks for one repository.
type Checker struct {
	// Repo is "owner/name", e.g. "schmitthub/fcgen".
	Repo string
	// StatePath is the YAML file caching the last check; empty disables
	// caching (every call hits the network).
	StatePath string
	// APIBase overrides the GitHub API endpoint, used in tests.
	APIBase string
}

// stateEntry is the cached check result, persisted as YAML.
type stateEntry struct {
	CheckedAt      time.Time `yaml:"checked_at"`
	LatestVersion  string    `yaml:"latest_version"`
	LatestURL      string    `yaml:"latest_url"`
	CurrentVersion string    `yaml:"current_version"`
}

// Result is returned when a newer version is available.
type Result struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

// releaseResponse is a partial response from the GitHub releases API.
type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Enabled reports whether a check should run at all. Checks are
// suppressed for dev builds, in CI, when FCGEN_NO_UPDATE_NOTIFIER is
// set, and while the cached result is still fresh.
func (c *Checker) Enabled(currentVersion string) bool {
	if os.Getenv("FCGEN_NO_UPDATE_NOTIFIER") != "" || os.Getenv("CI") != "" {
		return false
	}
	if currentVersion == "dev" {
		return false
	}
	if c.StatePath != "" {
		if entry, err := c.readState(); err == nil && time.Since(entry.CheckedAt) < cacheTTL {
			return false
		}
	}
	return true
}

// Check queries GitHub for the latest release.
// It returns (nil, nil) when checks are suppressed or the current
// version is already the latest, and (*Result, nil) when an upgrade
// exists. Network and API failures surface as errors for the caller to
// log and ignore.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*Result, error) {
	if !c.Enabled(currentVersion) {
		return nil, nil
	}

	release, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", c.Repo, err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	// Cache regardless of the comparison outcome so failures to upgrade
	// don't re-trigger a network call per command.
	if c.StatePath != "" {
		_ = c.writeState(stateEntry{
			CheckedAt:      time.Now(),
			LatestVersion:  latest,
			LatestURL:      release.HTMLURL,
			CurrentVersion: current,
		})
	}

	if !semverLess(current, latest) {
		return nil, nil
	}

	return &Result{
		CurrentVersion: current,
		LatestVersion:  latest,
		ReleaseURL:     release.HTMLURL,
	}, nil
}

func (c *Checker) apiBase() string {
	if c.APIBase != "" {
		return c.APIBase
	}
	return defaultAPIBase
}

func (c *Checker) fetchLatest(ctx context.Context) (*releaseResponse, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase(), c.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := &http.Client{Timeout: httpTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("empty tag_name in response")
	}
	return &release, nil
}

func (c *Checker) readState() (*stateEntry, error) {
	data, err := os.ReadFile(c.StatePath)
	if err != nil {
		return nil, err
	}
	var entry stateEntry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Checker) writeState(entry stateEntry) error {
	if err := os.MkdirAll(filepath.Dir(c.StatePath), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.StatePath, data, 0644)
}

// semverLess reports whether a < b for bare "MAJOR.MINOR.PATCH"
// versions. Unparseable versions never compare as less, so odd tags
// don't nag the user.
func semverLess(a, b string) bool {
	av, bv := parseSemver(a), parseSemver(b)
	if av == nil || bv == nil {
		return false
	}
	for i := range 3 {
		if av[i] != bv[i] {
			return av[i] < bv[i]
		}
	}
	return false
}

// parseSemver parses "MAJOR.MINOR.PATCH" into a 3-element []int,
// ignoring any pre-release suffix. Returns nil if parsing fails.
func parseSemver(v string) []int {
	if idx := strings.IndexByte(v, '-'); idx != -1 {
		v = v[:idx]
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return nil
	}
	out := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		out[i] = n
	}
	return out
}
