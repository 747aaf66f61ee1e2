package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"crate-licenses/internal/shared"
	"crate-licenses/internal/types"
)

const defaultRegistryBaseURL = "https://crates.io"

// registryUserAgent identifies the tool to crates.io, which rejects
// requests without a User-Agent. Derived from the build-time version.
var registryUserAgent = "crate-licenses/" + shared.Version + " (only direct dependencies)"

// RegistryHTTPAdapter queries the crates.io versions endpoint. Each
// call performs exactly one outbound request on the transport's default
// settings: no retries, no timeout override.
type RegistryHTTPAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewRegistryHTTPAdapter() RegistryHTTPAdapter {
	return RegistryHTTPAdapter{
		BaseURL: defaultRegistryBaseURL,
		Client:  &http.Client{},
	}
}

type versionsResponse struct {
	Versions []types.RegistryVersion `json:"versions"`
}

func (a RegistryHTTPAdapter) Versions(ctx context.Context, crate string) ([]types.RegistryVersion, error) {
	base := strings.TrimRight(a.BaseURL, "/")
	if base == "" {
		base = defaultRegistryBaseURL
	}
	endpoint := fmt.Sprintf("%s/api/v1/crates/%s/versions", base, url.PathEscape(crate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to build registry request for crate=%s", crate)).
			WithCause(err)
	}
	req.Header.Set("User-Agent", registryUserAgent)
	req.Header.Set("Accept", "application/json")

	client := a.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to fetch registry versions for crate=%s", crate)).
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("crate not found in registry: %s", crate)).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("registry returned status %d for crate=%s", resp.StatusCode, crate)).
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(body)))
	}

	var decoded versionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to parse registry response for crate=%s", crate)).
			WithCause(err)
	}
	return decoded.Versions, nil
}
