package platform

import (
	"context"
	"fmt"
	"net/url"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// SQLMetaClient wraps the SQL inspection API. It only reads metadata;
// there is no query execution surface.
type SQLMetaClient struct {
	c *client
}

// NewSQLMetaClient builds the client. No network I/O happens here.
func NewSQLMetaClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*SQLMetaClient, error) {
	c, err := newClient("sqlmeta", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &SQLMetaClient{c: c}, nil
}

// TableInfo identifies one table.
type TableInfo struct {
	Schema   string `json:"schema"`
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

// Column describes one column of a table.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ListTables returns the tables in a schema; an empty schema lists all.
func (s *SQLMetaClient) ListTables(ctx context.Context, schema string) ([]TableInfo, error) {
	q := url.Values{}
	if schema != "" {
		q.Set("schema", schema)
	}

	var wire struct {
		Value []TableInfo `json:"value"`
	}
	if err := s.c.getJSON(ctx, "sql-tables", "/api/tables", q, &wire); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return wire.Value, nil
}

// DescribeTable returns the columns of one table.
func (s *SQLMetaClient) DescribeTable(ctx context.Context, schema, table string) ([]Column, error) {
	path := "/api/tables/" + url.PathEscape(schema) + "/" + url.PathEscape(table) + "/columns"

	var wire struct {
		Value []Column `json:"value"`
	}
	if err := s.c.getJSON(ctx, "sql-describe", path, nil, &wire); err != nil {
		return nil, fmt.Errorf("describing %s.%s: %w", schema, table, err)
	}
	return wire.Value, nil
}
