// Package smartsheet implements sheets.Client over the Smartsheet REST API 2.0.
package smartsheet

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/conductor/internal/transport"
	"github.com/agentstation/conductor/pkg/constants"
	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Client talks to the Smartsheet API.
type Client struct {
	transport *transport.Client
	baseURL   string
}

var _ sheets.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL   string
	timeout   time.Duration
	transport *transport.Client
}

// WithBaseURL points the client at another API root (tests, regional hosts).
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithTransport replaces the HTTP transport. The token passed to New is
// ignored when a transport is supplied.
func WithTransport(t *transport.Client) Option {
	return func(o *options) {
		o.transport = t
	}
}

// New creates a Smartsheet client authenticated with an API access token.
func New(token string, opts ...Option) (*Client, error) {
	o := &options{baseURL: constants.DefaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}

	if o.transport == nil {
		if token == "" {
			return nil, errors.NewConfigError("smartsheet", constants.EnvToken+" is not set", nil)
		}
		o.transport = transport.New(&transport.BearerAuth{Token: token}, transport.WithTimeout(o.timeout))
	}

	if _, err := url.ParseRequestURI(o.baseURL); err != nil {
		return nil, errors.NewConfigError("smartsheet", fmt.Sprintf("invalid base url %q", o.baseURL), err)
	}

	return &Client{
		transport: o.transport,
		baseURL:   strings.TrimRight(o.baseURL, "/"),
	}, nil
}

type columnsResponse struct {
	Data       []sheets.Column `json:"data"`
	TotalCount int             `json:"totalCount"`
}

type sheetResponse struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Columns []sheets.Column `json:"columns"`
	Rows    []sheets.Row    `json:"rows"`
}

type rowUpdate struct {
	ID    int64               `json:"id"`
	Cells []sheets.CellUpdate `json:"cells"`
}

// Columns implements sheets.Client.
func (c *Client) Columns(ctx context.Context, sheetID int64) ([]sheets.Column, error) {
	q := url.Values{}
	q.Set("includeAll", "true")
	q.Set("level", "2")

	var out columnsResponse
	if err := c.get(ctx, c.sheetURL(sheetID, "columns")+"?"+q.Encode(), &out); err != nil {
		return nil, errors.WrapResource("fetch", "columns", id(sheetID), err)
	}
	return out.Data, nil
}

// Rows implements sheets.Client.
func (c *Client) Rows(ctx context.Context, sheetID int64, opts sheets.RowsOptions) ([]sheets.Row, error) {
	q := url.Values{}
	q.Set("level", "2")
	if opts.ObjectValues {
		q.Set("include", "objectValue")
	}
	if len(opts.ColumnIDs) > 0 {
		ids := make([]string, len(opts.ColumnIDs))
		for i, cid := range opts.ColumnIDs {
			ids[i] = id(cid)
		}
		q.Set("columnIds", strings.Join(ids, ","))
	}

	var out sheetResponse
	if err := c.get(ctx, c.sheetURL(sheetID, "")+"?"+q.Encode(), &out); err != nil {
		return nil, errors.WrapResource("fetch", "rows", id(sheetID), err)
	}
	return out.Rows, nil
}

// UpdateColumn implements sheets.Client.
func (c *Client) UpdateColumn(ctx context.Context, sheetID, columnID int64, update sheets.ColumnUpdate) error {
	if update == nil {
		return errors.NewValidationError("update", nil, "column update payload is required")
	}
	if err := c.put(ctx, c.sheetURL(sheetID, "columns/"+id(columnID)), update); err != nil {
		return errors.WrapResource("update", "column", id(sheetID)+"/"+id(columnID), err)
	}
	return nil
}

// UpdateRowCells implements sheets.Client.
func (c *Client) UpdateRowCells(ctx context.Context, sheetID, rowID int64, cells []sheets.CellUpdate) error {
	body := []rowUpdate{{ID: rowID, Cells: cells}}
	if err := c.put(ctx, c.sheetURL(sheetID, "rows"), body); err != nil {
		return errors.WrapResource("update", "row", id(sheetID)+"/"+id(rowID), err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	resp, err := c.transport.Get(ctx, u)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, target)
}

func (c *Client) put(ctx context.Context, u string, body any) error {
	resp, err := c.transport.Put(ctx, u, body)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, nil)
}

func (c *Client) sheetURL(sheetID int64, suffix string) string {
	u := c.baseURL + "/sheets/" + id(sheetID)
	if suffix != "" {
		u += "/" + suffix
	}
	return u
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
