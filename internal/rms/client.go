package rms

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/wosamar/rakuten-tools/internal/engine"
)

// Client talks to the RMS items 2.0 API. Transient failures are retried by
// the underlying transport; HTTP-level errors surface to the caller.
type Client struct {
	base string
	auth string
	http *retryablehttp.Client
}

// NewClient builds a client authenticated with the shop's service secret and
// license key pair.
func NewClient(baseURL, serviceSecret, licenseKey string, retryMax int) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(serviceSecret + ":" + licenseKey))

	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		auth: "Bearer " + token,
		http: rc,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	return data, resp.StatusCode, nil
}

// GetItem fetches one item and maps it into the engine's snapshot view.
func (c *Client) GetItem(ctx context.Context, manageNumber string) (engine.ProductSnapshot, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/items/manage-numbers/"+manageNumber, nil)
	if err != nil {
		return engine.ProductSnapshot{}, err
	}
	if status != http.StatusOK {
		return engine.ProductSnapshot{}, fmt.Errorf("get item %s: %s", manageNumber, apiError(body, status))
	}
	return snapshotFromJSON(gjson.ParseBytes(body)), nil
}

// BulkGet fetches a batch of items by manage number.
func (c *Client) BulkGet(ctx context.Context, manageNumbers []string) ([]engine.ProductSnapshot, error) {
	payload, err := json.Marshal(map[string][]string{"manageNumbers": manageNumbers})
	if err != nil {
		return nil, err
	}
	body, status, err := c.do(ctx, http.MethodPost, "/items/bulk-get", payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("bulk-get items: %s", apiError(body, status))
	}

	var items []engine.ProductSnapshot
	gjson.GetBytes(body, "items").ForEach(func(_, el gjson.Result) bool {
		if inner := el.Get("item"); inner.Exists() {
			el = inner
		}
		items = append(items, snapshotFromJSON(el))
		return true
	})
	return items, nil
}

// PatchItem issues the partial update for one item. RMS answers 204 on
// success.
func (c *Client) PatchItem(ctx context.Context, manageNumber string, payload engine.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", manageNumber, err)
	}
	body, status, err := c.do(ctx, http.MethodPatch, "/items/manage-numbers/"+manageNumber, data)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("patch item %s: %s", manageNumber, apiError(body, status))
	}
	return nil
}

// ApplyResult summarizes one bulk update pass.
type ApplyResult struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// ApplyPayloads patches every item in the generated map, one request each.
// A failed item is recorded and the pass continues; the marketplace holds no
// transaction across items anyway.
func (c *Client) ApplyPayloads(ctx context.Context, payloads map[string]engine.Payload) ApplyResult {
	res := ApplyResult{Total: len(payloads), Failed: map[string]string{}}

	ids := make([]string, 0, len(payloads))
	for id := range payloads {
		ids = append(ids, id)
	}
	// deterministic order for logs and partial reruns
	sort.Strings(ids)

	for _, id := range ids {
		if err := c.PatchItem(ctx, id, payloads[id]); err != nil {
			log.Error().Err(err).Str("manage_number", id).Msg("item update failed")
			res.Failed[id] = err.Error()
			continue
		}
		res.Succeeded++
		log.Debug().Str("manage_number", id).Msg("item updated")
	}

	log.Info().
		Int("total", res.Total).
		Int("succeeded", res.Succeeded).
		Int("failed", len(res.Failed)).
		Msg("apply pass finished")
	return res
}

// snapshotFromJSON maps an RMS item document into the engine's view. The
// detailed endpoint nests productDescription while search results flatten it,
// and hidden state comes under two different keys.
func snapshotFromJSON(j gjson.Result) engine.ProductSnapshot {
	sp := j.Get("productDescription.sp").String()
	pc := j.Get("productDescription.pc").String()
	if !j.Get("productDescription").Exists() {
		sp = j.Get("descriptionForSmartPhone").String()
		pc = j.Get("descriptionForPC").String()
	}

	title := j.Get("title").String()
	if title == "" {
		title = j.Get("itemName").String()
	}

	sales := j.Get("salesDescription").String()
	if sales == "" {
		sales = pc
	}

	return engine.ProductSnapshot{
		ManageNumber:     j.Get("manageNumber").String(),
		Title:            title,
		Description:      engine.Description{PC: pc, SP: sp},
		SalesDescription: sales,
		IsHidden:         j.Get("hideItem").Bool() || j.Get("isHiddenItem").Bool(),
	}
}

func apiError(body []byte, status int) string {
	var msgs []string
	gjson.GetBytes(body, "errors.#.message").ForEach(func(_, m gjson.Result) bool {
		msgs = append(msgs, m.String())
		return true
	})
	if len(msgs) == 0 {
		return fmt.Sprintf("status %d: %s", status, strings.TrimSpace(string(body)))
	}
	return fmt.Sprintf("status %d: %s", status, strings.Join(msgs, "; "))
}
