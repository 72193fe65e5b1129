// Package update checks GitHub for a newer release of the CLI.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// DefaultReleasesURL is where released versions are published.
	DefaultReleasesURL = "https://api.github.com/repos/canvaslms/canvas-cli/releases/latest"
	CheckTimeout       = 5 * time.Second
)

// ReleasesURL is the release endpoint; tests point it at a local server.
var ReleasesURL = DefaultReleasesURL

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckResult describes the outcome of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// Check reports whether a newer release exists. It returns nil on any
// failure; an update hint must never block or break the CLI.
func Check(ctx context.Context, currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil
	}

	current := canonical(currentVersion)
	latest := canonical(rel.TagName)
	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return nil
	}

	return &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateURL:       rel.HTMLURL,
		UpdateAvailable: semver.Compare(latest, current) > 0,
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
