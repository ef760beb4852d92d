package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// EntitiesClient wraps the entity/record access API.
type EntitiesClient struct {
	c *client
}

// NewEntitiesClient builds the client. No network I/O happens here.
func NewEntitiesClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*EntitiesClient, error) {
	c, err := newClient("entities", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &EntitiesClient{c: c}, nil
}

// EntitySet is one queryable record collection.
type EntitySet struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// ListSets returns the entity sets exposed by the platform.
func (e *EntitiesClient) ListSets(ctx context.Context) ([]EntitySet, error) {
	var wire struct {
		Value []struct {
			LogicalName string `json:"logicalName"`
			DisplayName string `json:"displayName"`
		} `json:"value"`
	}
	if err := e.c.getJSON(ctx, "ent-sets", "/api/sets", nil, &wire); err != nil {
		return nil, fmt.Errorf("listing entity sets: %w", err)
	}

	sets := make([]EntitySet, 0, len(wire.Value))
	for _, s := range wire.Value {
		sets = append(sets, EntitySet{Name: s.LogicalName, DisplayName: s.DisplayName})
	}
	return sets, nil
}

// GetRecord fetches one record by id. Platform annotation fields
// (keys starting with "@") are stripped from the result.
func (e *EntitiesClient) GetRecord(ctx context.Context, set, id string) (map[string]any, error) {
	var wire map[string]any
	path := "/api/sets/" + url.PathEscape(set) + "/records/" + url.PathEscape(id)
	if err := e.c.getJSON(ctx, "ent-record", path, nil, &wire); err != nil {
		return nil, fmt.Errorf("fetching record %s/%s: %w", set, id, err)
	}
	return stripAnnotations(wire), nil
}

// QueryRecords runs a filtered query over a set, returning at most top
// records.
func (e *EntitiesClient) QueryRecords(ctx context.Context, set, filter string, top int) ([]map[string]any, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("$filter", filter)
	}
	if top > 0 {
		q.Set("$top", strconv.Itoa(top))
	}

	var wire struct {
		Value []map[string]any `json:"value"`
	}
	path := "/api/sets/" + url.PathEscape(set) + "/records"
	if err := e.c.getJSON(ctx, "ent-query", path, q, &wire); err != nil {
		return nil, fmt.Errorf("querying %s: %w", set, err)
	}

	out := make([]map[string]any, 0, len(wire.Value))
	for _, rec := range wire.Value {
		out = append(out, stripAnnotations(rec))
	}
	return out, nil
}

func stripAnnotations(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		if strings.HasPrefix(k, "@") {
			continue
		}
		out[k] = v
	}
	return out
}
