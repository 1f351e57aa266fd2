package bse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/roach88/electron/internal/periodic"
)

const (
	// DefaultBaseURL is the public Basis Set Exchange API endpoint.
	DefaultBaseURL = "https://www.basissetexchange.org"
	// DefaultCacheRoot is the default on-disk cache location, relative
	// to the working directory.
	DefaultCacheRoot = "data/basis"

	defaultTimeout = 30 * time.Second
)

// Client fetches QCSchema basis set definitions, keeping one cached
// JSON file per (basis, element) pair under its cache root.
type Client struct {
	baseURL    string
	cacheRoot  string
	httpClient *http.Client
}

// NewClient returns a client for the public Basis Set Exchange with the
// default cache location.
func NewClient() *Client {
	return NewClientWith(DefaultBaseURL, DefaultCacheRoot)
}

// NewClientWith returns a client for the given API endpoint and cache
// root.
func NewClientWith(baseURL, cacheRoot string) *Client {
	return &Client{
		baseURL:    baseURL,
		cacheRoot:  cacheRoot,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client and returns c.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Fetch ensures the QCSchema definition for element in the named basis
// set is present in the cache and returns its path. The cache file is
// revalidated first: empty or non-JSON content forces a refetch. A
// response is written to the cache only after it has been checked, so
// an invalid or element-less response is reported without being stored.
func (c *Client) Fetch(element, basis string) (string, error) {
	if basis == "" {
		return "", &FetchError{Code: FetchInvalidBasisSetName, BasisName: basis}
	}
	el, ok := periodic.Normalize(element)
	if !ok {
		return "", &FetchError{Code: FetchInvalidElement, Element: element}
	}
	basisNorm := strings.ToLower(basis)

	path := filepath.Join(c.cacheRoot, basisNorm, el+".json")
	if cacheIsValid(path) {
		return path, nil
	}

	url := fmt.Sprintf("%s/api/basis/%s/format/qcschema?elements=%s", c.baseURL, basisNorm, el)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", &FetchError{Code: FetchNetworkError, Element: el, BasisName: basisNorm, Detail: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", &FetchError{Code: FetchUnknownBasisSet, BasisName: basisNorm}
	default:
		return "", &FetchError{
			Code: FetchNetworkError, Element: el, BasisName: basisNorm,
			Detail: fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Code: FetchNetworkError, Element: el, BasisName: basisNorm, Detail: err.Error()}
	}
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", &FetchError{Code: FetchInvalidResponse, Element: el, BasisName: basisNorm, Detail: err.Error()}
	}
	if elementsFieldEmpty(probe) {
		return "", &FetchError{Code: FetchElementNotInBasisSet, Element: el, BasisName: basisNorm}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &FetchError{Code: FetchIO, Element: el, BasisName: basisNorm, Detail: err.Error()}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", &FetchError{Code: FetchIO, Element: el, BasisName: basisNorm, Detail: err.Error()}
	}
	return path, nil
}

// Load fetches (or reuses from cache) and parses the basis definition
// for one element.
func (c *Client) Load(element, basis string) (*BasisSet, error) {
	path, err := c.Fetch(element, basis)
	if err != nil {
		return nil, fmt.Errorf("fetch error: %w", err)
	}
	bs, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return bs, nil
}

func cacheIsValid(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil || len(content) == 0 {
		return false
	}
	return json.Valid(content)
}

// elementsFieldEmpty reports whether a syntactically valid response
// carries no element data. The Basis Set Exchange answers HTTP 200 with
// an empty elements container when the element is not part of the
// requested basis set.
func elementsFieldEmpty(doc any) bool {
	obj, ok := doc.(map[string]any)
	if !ok {
		return true
	}
	v, present := obj["elements"]
	if !present {
		return true
	}
	switch vv := v.(type) {
	case map[string]any:
		return len(vv) == 0
	case []any:
		return len(vv) == 0
	}
	return false
}
