package agentboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxSheetBytes caps how much of a sheet response is read.
var maxSheetBytes int64 = 32 << 20

// SheetRowStore reads rows from a spreadsheet JSON API that serves each sheet as an
// array of objects keyed by header cell, e.g. GET {base}/{sheet}.
type SheetRowStore struct {
	baseURL string
	sheets  map[Resource]string
	token   string
	client  *http.Client
}

type SheetConfig struct {
	BaseURL string
	Sheets  map[Resource]string // resource -> sheet name
	Token   string              // optional bearer token
	Client  *http.Client
}

func NewSheetRowStore(conf *SheetConfig) *SheetRowStore {
	client := conf.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &SheetRowStore{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		sheets:  conf.Sheets,
		token:   conf.Token,
		client:  client,
	}
}

func (s *SheetRowStore) Rows(ctx context.Context, resource Resource) ([]Row, error) {
	sheet, ok := s.sheets[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(sheet), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s: %w", sheet, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	if int64(len(body)) > maxSheetBytes {
		return nil, fmt.Errorf("read sheet %s: response larger than %d bytes", sheet, maxSheetBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch sheet %s: status %d: %s", sheet, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	// keep numeric cells as written e.g. ids like 100 stay "100" instead of "1e+02"
	dec.UseNumber()

	objs := []Row{}
	if err = dec.Decode(&objs); err != nil {
		return nil, fmt.Errorf("decode sheet %s: %w", sheet, err)
	}
	return objs, nil
}
