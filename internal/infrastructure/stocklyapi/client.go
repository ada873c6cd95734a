// Package stocklyapi es la capa de cliente del servicio REST de inventario (Stockly).
// Cada método hace exactamente una petición: sin reintentos, sin caché y sin timeout
// propio; la única forma de abandonar una llamada es cancelar el contexto.
package stocklyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/stockly-web/internal/domain/repository"
	"github.com/jhoicas/stockly-web/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ repository.ProductRepository   = (*Client)(nil)
	_ repository.MovementRepository  = (*Client)(nil)
	_ repository.DashboardRepository = (*Client)(nil)
)

const maxBodyBytes = 4 << 20

// Client adaptador HTTP hacia el servicio. Usa net/http de la librería estándar.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *logger.Logger
}

// Option personaliza el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transporte propio).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger registra cada llamada a nivel debug.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New construye el cliente para baseURL (ej: "http://localhost:8000").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("stocklyapi: base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("stocklyapi: base url %q: falta esquema o host", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do ejecuta method path con query y cuerpo JSON opcionales y decodifica la respuesta 2xx
// en out (si out != nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("serializar request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("op", op).
		Str("query", u.RawQuery).
		Int("status", resp.StatusCode).
		Msg("stockly api")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Kind: KindService, Op: op, Status: resp.StatusCode}
		var ew errorWire
		if json.Unmarshal(raw, &ew) == nil {
			apiErr.Detail = ew.detail()
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil {
			return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Err: errors.New("cuerpo vacío")}
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}
