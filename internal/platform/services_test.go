package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- response shaping per service ---

func TestWorkItemsClient_ShapesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/wiql" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"workItems": []map[string]any{
				{"id": 42, "fields": map[string]string{
					"System.WorkItemType": "Bug",
					"System.Title":        "Crash on save",
					"System.State":        "Active",
					"System.AssignedTo":   "dev@example.test",
				}},
			},
		})
	}))
	defer srv.Close()

	wc, err := NewWorkItemsClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	items, err := wc.Query(context.Background(), "SELECT * FROM workitems", 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	want := WorkItem{ID: 42, Type: "Bug", Title: "Crash on save", State: "Active", AssignedTo: "dev@example.test"}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}
}

func TestReposClient_DecodesFileContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "docs/readme.md" {
			t.Errorf("path query = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"path":    "docs/readme.md",
			"size":    12,
			"content": base64.StdEncoding.EncodeToString([]byte("hello opsmcp")),
		})
	}))
	defer srv.Close()

	rc, err := NewReposClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := rc.GetFile(context.Background(), "core", "main", "docs/readme.md")
	if err != nil {
		t.Fatalf("GetFile returned error: %v", err)
	}
	if f.Content != "hello opsmcp" {
		t.Errorf("content = %q, want decoded text", f.Content)
	}
}

func TestTelemetryClient_KeepsPrimaryTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tables": []map[string]any{
				{
					"columns": []map[string]string{{"name": "timestamp"}, {"name": "message"}},
					"rows":    [][]any{{"2026-01-01T00:00:00Z", "boom"}},
				},
				{
					"columns": []map[string]string{{"name": "ignored"}},
					"rows":    [][]any{},
				},
			},
		})
	}))
	defer srv.Close()

	tc, err := NewTelemetryClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	table, err := tc.Query(context.Background(), "traces | take 1", "PT1H")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(table.Columns) != 2 || table.Columns[1] != "message" {
		t.Errorf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 1 {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestEntitiesClient_StripsAnnotations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":        "Contoso",
			"@odata.etag": "W/\"123\"",
			"@editLink":   "x",
			"revenue":     1000,
		})
	}))
	defer srv.Close()

	ec, err := NewEntitiesClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := ec.GetRecord(context.Background(), "accounts", "abc-1")
	if err != nil {
		t.Fatalf("GetRecord returned error: %v", err)
	}
	if _, ok := rec["@odata.etag"]; ok {
		t.Error("annotation keys must be stripped")
	}
	if rec["name"] != "Contoso" {
		t.Errorf("record = %v", rec)
	}
}

func TestSQLMetaClient_DescribeTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tables/dbo/orders/columns" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"name": "id", "type": "bigint", "nullable": false},
				{"name": "note", "type": "nvarchar", "nullable": true},
			},
		})
	}))
	defer srv.Close()

	sc, err := NewSQLMetaClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	cols, err := sc.DescribeTable(context.Background(), "dbo", "orders")
	if err != nil {
		t.Fatalf("DescribeTable returned error: %v", err)
	}
	if len(cols) != 2 || cols[0].Name != "id" || !cols[1].Nullable {
		t.Errorf("columns = %+v", cols)
	}
}

func TestFilesClient_ListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folder"); got != "specs" {
			t.Errorf("folder query = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"name": "plan.md", "path": "specs/plan.md", "size": 140, "folder": false},
			},
		})
	}))
	defer srv.Close()

	fc, err := NewFilesClient(testService(srv.URL), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	items, err := fc.ListItems(context.Background(), "engineering", "specs")
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "plan.md" {
		t.Errorf("items = %+v", items)
	}
}
