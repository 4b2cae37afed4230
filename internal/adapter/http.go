package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
	"github.com/MKhiriev/go-chore-keeper/models"
)

const (
	headerHash    = "HashSHA256"
	headerTraceID = "X-Trace-ID"

	pathHealth = "/api/health"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// adapterCfg.HTTPAddress may omit the scheme, in which case http is assumed.
// appCfg.HashKey enables the HashSHA256 body integrity header and
// appCfg.Token seeds the bearer token.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher: utils.NewHasher(appCfg.HashKey),
		logger: logger,
	}
	a.SetToken(appCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Ping implements [ServerAdapter] with GET /api/health.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).Get(pathHealth)
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

// List implements [ServerAdapter] with GET /api/{collection}/.
func (h *httpServerAdapter) List(ctx context.Context, c models.Collection) ([]models.Record, error) {
	var records []models.Record

	resp, err := h.request(ctx).
		SetResult(&records).
		Get(collectionPath(c))
	if err != nil {
		return nil, fmt.Errorf("list %s request: %w", c, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if records == nil {
		records = make([]models.Record, 0)
	}
	return records, nil
}

// Create implements [ServerAdapter] with POST /api/{collection}/.
func (h *httpServerAdapter) Create(ctx context.Context, c models.Collection, record models.Record) (models.Record, error) {
	req, err := h.requestWithBody(ctx, record)
	if err != nil {
		return nil, err
	}

	var stored models.Record
	resp, err := req.SetResult(&stored).Post(collectionPath(c))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", c, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return storedOrSent(stored, record), nil
}

// Update implements [ServerAdapter] with PUT /api/{collection}/{id}.
func (h *httpServerAdapter) Update(ctx context.Context, c models.Collection, id string, record models.Record) (models.Record, error) {
	if id == "" {
		return nil, ErrMissingRecordID
	}

	req, err := h.requestWithBody(ctx, record)
	if err != nil {
		return nil, err
	}

	var stored models.Record
	resp, err := req.SetResult(&stored).Put(recordPath(c, id))
	if err != nil {
		return nil, fmt.Errorf("update %s request: %w", c, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return storedOrSent(stored, record), nil
}

// Delete implements [ServerAdapter] with DELETE /api/{collection}/{id}.
func (h *httpServerAdapter) Delete(ctx context.Context, c models.Collection, id string) error {
	if id == "" {
		return ErrMissingRecordID
	}

	resp, err := h.request(ctx).Delete(recordPath(c, id))
	if err != nil {
		return fmt.Errorf("delete %s request: %w", c, err)
	}

	return mapHTTPError(resp)
}

// request returns a resty request carrying the bearer token and trace id.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(headerTraceID, traceID)
	}
	return req
}

// requestWithBody marshals body once so the integrity hash covers the exact
// bytes sent.
func (h *httpServerAdapter) requestWithBody(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if hash := h.hasher.Sum(payload); hash != "" {
		req.SetHeader(headerHash, hash)
	}

	return req, nil
}

func collectionPath(c models.Collection) string {
	return "/api/" + url.PathEscape(string(c)) + "/"
}

func recordPath(c models.Collection, id string) string {
	return "/api/" + url.PathEscape(string(c)) + "/" + url.PathEscape(id)
}

// storedOrSent tolerates backends that answer 201/204 without a body.
func storedOrSent(stored, sent models.Record) models.Record {
	if len(stored) > 0 {
		return stored
	}
	return sent.Clone()
}
