package platform

import (
	"context"
	"fmt"
	"net/url"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// FilesClient wraps the file/library inspection API.
type FilesClient struct {
	c *client
}

// NewFilesClient builds the client. No network I/O happens here.
func NewFilesClient(cfg config.Service, cs *cache.Store, al *audit.Log) (*FilesClient, error) {
	c, err := newClient("files", cfg, cs, al)
	if err != nil {
		return nil, err
	}
	return &FilesClient{c: c}, nil
}

// Library is one document library.
type Library struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// Item is a file or folder entry inside a library.
type Item struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Folder   bool   `json:"folder"`
	Modified string `json:"modified"`
}

// ListLibraries returns the available document libraries.
func (f *FilesClient) ListLibraries(ctx context.Context) ([]Library, error) {
	var wire struct {
		Value []Library `json:"value"`
	}
	if err := f.c.getJSON(ctx, "lib-list", "/api/libraries", nil, &wire); err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}
	return wire.Value, nil
}

// ListItems returns the entries under folder in a library; an empty
// folder lists the library root.
func (f *FilesClient) ListItems(ctx context.Context, library, folder string) ([]Item, error) {
	q := url.Values{}
	if folder != "" {
		q.Set("folder", folder)
	}

	var wire struct {
		Value []Item `json:"value"`
	}
	path := "/api/libraries/" + url.PathEscape(library) + "/items"
	if err := f.c.getJSON(ctx, "lib-files", path, q, &wire); err != nil {
		return nil, fmt.Errorf("listing items in %s: %w", library, err)
	}
	return wire.Value, nil
}

// ItemInfo returns the metadata of one item without its content.
func (f *FilesClient) ItemInfo(ctx context.Context, library, path string) (*Item, error) {
	q := url.Values{}
	q.Set("path", path)

	var wire Item
	target := "/api/libraries/" + url.PathEscape(library) + "/item"
	if err := f.c.getJSON(ctx, "lib-info", target, q, &wire); err != nil {
		return nil, fmt.Errorf("fetching item info for %s: %w", path, err)
	}
	return &wire, nil
}
