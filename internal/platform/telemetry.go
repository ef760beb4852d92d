package platform

import (
	"context"
	"fmt"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// TelemetryClient wraps the telemetry query API.
type TelemetryClient struct {
	c *client
}

// NewTelemetryClient builds the client. No network I/O happens here.
func NewTelemetryClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*TelemetryClient, error) {
	c, err := newClient("telemetry", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &TelemetryClient{c: c}, nil
}

// ResultTable is the shaped first result table of a telemetry query.
type ResultTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Query runs a telemetry query over the given timespan (e.g. "PT1H").
// The platform may return several tables; only the primary one is kept.
func (t *TelemetryClient) Query(ctx context.Context, query, timespan string) (*ResultTable, error) {
	payload := map[string]string{"query": query}
	if timespan != "" {
		payload["timespan"] = timespan
	}

	var wire struct {
		Tables []struct {
			Columns []struct {
				Name string `json:"name"`
			} `json:"columns"`
			Rows [][]any `json:"rows"`
		} `json:"tables"`
	}
	if err := t.c.postJSON(ctx, "tel-query", "/api/query", payload, &wire); err != nil {
		return nil, fmt.Errorf("running telemetry query: %w", err)
	}
	if len(wire.Tables) == 0 {
		return &ResultTable{}, nil
	}

	primary := wire.Tables[0]
	cols := make([]string, 0, len(primary.Columns))
	for _, c := range primary.Columns {
		cols = append(cols, c.Name)
	}
	return &ResultTable{Columns: cols, Rows: primary.Rows}, nil
}
