// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/genoscope/internal/httputil"
	"github.com/pdiddy/genoscope/pkg/types"
)

// eutilsBase is the NCBI E-utilities endpoint root. Declared as a var so
// tests can substitute an httptest server. The endpoint paths and
// parameter names below are a fixed external contract.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// eutilsClient wraps the shared HTTP client with the E-utilities calling
// conventions (tool/email tagging, optional API key, 429 backoff).
type eutilsClient struct {
	http *http.Client
	cfg  types.RetrieveConfig
}

// baseParams returns the parameters every E-utilities call carries.
func (c *eutilsClient) baseParams() url.Values {
	params := url.Values{
		"tool":  {c.cfg.ToolTag},
		"email": {c.cfg.ContactEmail},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

// get performs one GET against endpoint (e.g. "esearch.fcgi") and
// returns the response body. Non-200 statuses are errors.
func (c *eutilsClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := eutilsBase + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	return body, nil
}

// esearch response JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	IDList []string `json:"idlist"`
}

// search runs esearch.fcgi against db and returns the matching opaque
// IDs, capped at MaxPerStrategy. useHistory adds usehistory=y, which
// improves run-archive results.
func (c *eutilsClient) search(ctx context.Context, db types.Backend, term string, useHistory bool) ([]string, error) {
	params := c.baseParams()
	params.Set("db", string(db))
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(c.cfg.MaxPerStrategy))
	params.Set("retmode", "json")
	if useHistory {
		params.Set("usehistory", "y")
	}

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

// esummary runs esummary.fcgi for a batch of IDs and returns the raw
// per-ID summaries in the order the "uids" field declares. version is
// passed through when non-empty (the dataset catalog requires "2.0").
func (c *eutilsClient) esummary(ctx context.Context, db types.Backend, ids []string, version string) ([]json.RawMessage, error) {
	params := c.baseParams()
	params.Set("db", string(db))
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")
	if version != "" {
		params.Set("version", version)
	}

	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	var sr struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing esummary response: %w", err)
	}

	// The "uids" entry lists the summaries in response order; iterating
	// the map directly would lose it.
	var uids []string
	if raw, ok := sr.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &uids); err != nil {
			return nil, fmt.Errorf("parsing esummary uid list: %w", err)
		}
	}

	var summaries []json.RawMessage
	for _, uid := range uids {
		if raw, ok := sr.Result[uid]; ok {
			summaries = append(summaries, raw)
		}
	}
	return summaries, nil
}

// efetch runs efetch.fcgi and returns the raw text payload (runinfo
// tables, FASTA, GenBank records).
func (c *eutilsClient) efetch(ctx context.Context, db types.Backend, ids []string, rettype string) ([]byte, error) {
	params := c.baseParams()
	params.Set("db", string(db))
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", rettype)
	params.Set("retmode", "text")

	return c.get(ctx, "efetch.fcgi", params)
}
