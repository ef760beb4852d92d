package platform

import (
	"context"
	"fmt"
	"strconv"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// WorkItemsClient wraps the work-item tracking API.
type WorkItemsClient struct {
	c *client
}

// NewWorkItemsClient builds the client. No network I/O happens here.
func NewWorkItemsClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*WorkItemsClient, error) {
	c, err := newClient("workitems", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &WorkItemsClient{c: c}, nil
}

// WorkItem is the shaped view of a work item; the wire format nests
// everything under a fields map keyed by fully qualified names.
type WorkItem struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	State      string `json:"state"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

type workItemWire struct {
	ID     int               `json:"id"`
	Fields map[string]string `json:"fields"`
}

func (w workItemWire) shaped() WorkItem {
	return WorkItem{
		ID:         w.ID,
		Type:       w.Fields["System.WorkItemType"],
		Title:      w.Fields["System.Title"],
		State:      w.Fields["System.State"],
		AssignedTo: w.Fields["System.AssignedTo"],
	}
}

// Query runs a work-item query and returns at most top shaped items.
// Queries are POSTs and are never cached.
func (w *WorkItemsClient) Query(ctx context.Context, query string, top int) ([]WorkItem, error) {
	payload := map[string]any{"query": query}
	if top > 0 {
		payload["top"] = top
	}

	var wire struct {
		WorkItems []workItemWire `json:"workItems"`
	}
	if err := w.c.postJSON(ctx, "wit-query", "/api/wiql", payload, &wire); err != nil {
		return nil, fmt.Errorf("querying work items: %w", err)
	}

	items := make([]WorkItem, 0, len(wire.WorkItems))
	for _, wi := range wire.WorkItems {
		items = append(items, wi.shaped())
	}
	return items, nil
}

// Get fetches one work item by id.
func (w *WorkItemsClient) Get(ctx context.Context, id int) (*WorkItem, error) {
	var wire workItemWire
	path := "/api/workitems/" + strconv.Itoa(id)
	if err := w.c.getJSON(ctx, "wit-get", path, nil, &wire); err != nil {
		return nil, fmt.Errorf("fetching work item %d: %w", id, err)
	}
	item := wire.shaped()
	return &item, nil
}
