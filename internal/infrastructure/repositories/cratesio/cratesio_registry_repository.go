package cratesio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

const (
	// RegistryType is the identifier used in settings for this registry.
	RegistryType = "cratesio"

	versionsPathFmt = "%s/api/v1/crates/%s/versions"
)

// versionsResponse is the body of GET /api/v1/crates/{name}/versions.
type versionsResponse struct {
	Versions []versionRecord `json:"versions"`
}

// versionRecord is a single published release. Only Crate, Num, Yanked and
// UpdatedAt drive selection; the rest is decoded loosely.
type versionRecord struct {
	ID           uint64              `json:"id"`
	Crate        string              `json:"crate"`
	Num          string              `json:"num"`
	DLPath       string              `json:"dl_path"`
	ReadmePath   *string             `json:"readme_path"`
	UpdatedAt    string              `json:"updated_at"`
	CreatedAt    string              `json:"created_at"`
	Downloads    uint64              `json:"downloads"`
	Features     map[string][]string `json:"features"`
	Yanked       bool                `json:"yanked"`
	License      *string             `json:"license"`
	Links        map[string]string   `json:"links"`
	CrateSize    *uint64             `json:"crate_size"`
	PublishedBy  *publisher          `json:"published_by"`
	AuditActions []auditAction       `json:"audit_actions"`
}

type publisher struct {
	ID     uint64  `json:"id"`
	Login  string  `json:"login"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	URL    *string `json:"url"`
}

type auditAction struct {
	Action *string   `json:"action"`
	User   publisher `json:"user"`
	Time   string    `json:"time"`
}

// RegistryRepository queries the crates.io HTTP API.
type RegistryRepository struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	inflight   singleflight.Group
}

// NewRegistryRepository creates a crates.io client for the given settings.
func NewRegistryRepository(cfg entities.RegistrySettings) repositories.RegistryRepository {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = cfg.Timeout

	return &RegistryRepository{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: client,
	}
}

// FetchLatest issues one request for the crate's version list and selects the
// newest non-yanked release. Concurrent calls for the same crate share a request.
func (r *RegistryRepository) FetchLatest(
	ctx context.Context,
	name string,
	opts entities.SelectionOptions,
) (entities.RegistryVersionInfo, error) {
	key := name + "|" + strconv.FormatBool(opts.SkipPrereleases)
	result, err, _ := r.inflight.Do(key, func() (any, error) {
		return r.fetch(ctx, name, opts)
	})
	if err != nil {
		return entities.RegistryVersionInfo{}, err
	}
	return result.(entities.RegistryVersionInfo), nil
}

func (r *RegistryRepository) fetch(
	ctx context.Context,
	name string,
	opts entities.SelectionOptions,
) (entities.RegistryVersionInfo, error) {
	endpoint := fmt.Sprintf(versionsPathFmt, r.baseURL, url.PathEscape(name))
	logger.Debugf("[cratesio] GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.RegistryVersionInfo{}, networkError(name, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return entities.RegistryVersionInfo{}, networkError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.RegistryVersionInfo{}, networkError(
			name, fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.RegistryVersionInfo{}, networkError(name, fmt.Errorf("failed to read response body: %w", err))
	}

	return parseVersions(name, body, opts)
}

// parseVersions decodes a versions response body and applies the selection policy.
func parseVersions(
	name string,
	body []byte,
	opts entities.SelectionOptions,
) (entities.RegistryVersionInfo, error) {
	if !utf8.Valid(body) {
		return entities.RegistryVersionInfo{}, &entities.FetchError{
			Kind:  entities.EncodingError,
			Crate: name,
			Err:   errors.New("response body is not valid UTF-8"),
		}
	}

	var parsed versionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return entities.RegistryVersionInfo{}, &entities.FetchError{
			Kind:  entities.ParseError,
			Crate: name,
			Err:   fmt.Errorf("failed to decode versions: %w", err),
		}
	}

	return selectLatest(name, parsed.Versions, opts)
}

// selectLatest walks the records in reverse of received order (oldest first,
// since the registry lists newest first) and keeps overwriting the candidate,
// so the newest non-yanked release wins.
func selectLatest(
	name string,
	records []versionRecord,
	opts entities.SelectionOptions,
) (entities.RegistryVersionInfo, error) {
	latest := entities.EmptyRegistryVersionInfo()

	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		if record.Yanked {
			continue
		}

		version, err := parseVersion(name, record.Num)
		if err != nil {
			return entities.RegistryVersionInfo{}, err
		}
		if opts.SkipPrereleases && version.Prerelease() != "" {
			continue
		}

		latest = entities.RegistryVersionInfo{
			CrateName:   record.Crate,
			Version:     version,
			LastUpdated: truncateTimestamp(record.UpdatedAt),
		}
	}

	if latest.IsEmpty() {
		logger.Debugf("[cratesio] %s has no eligible release", name)
	}
	return latest, nil
}

func parseVersion(name, num string) (*semver.Version, error) {
	var cause error
	if num == "" {
		cause = errors.New("missing version number")
	} else {
		version, err := semver.StrictNewVersion(num)
		if err == nil {
			return version, nil
		}
		cause = err
	}

	return nil, &entities.FetchError{
		Kind:  entities.ParseError,
		Crate: name,
		Err:   &entities.VersionParseError{Crate: name, Version: num, Err: cause},
	}
}

// truncateTimestamp drops the fractional seconds of an ISO 8601 timestamp.
func truncateTimestamp(ts string) string {
	prefix, _, _ := strings.Cut(ts, ".")
	return prefix
}

func networkError(name string, err error) error {
	return &entities.FetchError{Kind: entities.NetworkError, Crate: name, Err: err}
}
