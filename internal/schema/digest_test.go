package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmartins/dbchat/internal/api"
	"github.com/dmartins/dbchat/internal/models"
)

func TestFetchSummarizes(t *testing.T) {
	mock := &api.MockClient{
		SchemaVal: models.Schema{
			"orders":    {"id", "total"},
			"customers": {"id", "name"},
		},
	}

	d := Fetch(context.Background(), mock)
	if d == nil {
		t.Fatal("Fetch() = nil")
	}
	if d.TableCount != 2 {
		t.Errorf("TableCount = %d, want 2", d.TableCount)
	}
	// Sorted for stable display.
	if d.Tables[0] != "customers" || d.Tables[1] != "orders" {
		t.Errorf("Tables = %v", d.Tables)
	}
}

func TestFetchFailureYieldsNil(t *testing.T) {
	mock := &api.MockClient{SchemaErr: errors.New("connection refused")}
	if d := Fetch(context.Background(), mock); d != nil {
		t.Errorf("Fetch() = %+v, want nil on failure", d)
	}

	empty := &api.MockClient{SchemaVal: models.Schema{}}
	if d := Fetch(context.Background(), empty); d != nil {
		t.Errorf("Fetch() = %+v, want nil on empty schema", d)
	}
}

func TestFetchCapsTables(t *testing.T) {
	sch := models.Schema{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		sch[name] = []string{"id"}
	}
	mock := &api.MockClient{SchemaVal: sch}

	d := Fetch(context.Background(), mock)
	if d == nil {
		t.Fatal("Fetch() = nil")
	}
	if d.TableCount != 10 {
		t.Errorf("TableCount = %d, want 10", d.TableCount)
	}
	if len(d.Tables) != maxTables {
		t.Errorf("len(Tables) = %d, want %d", len(d.Tables), maxTables)
	}
}

func TestSuggestions(t *testing.T) {
	d := &Digest{TableCount: 2, Tables: []string{"customers", "orders"}}

	got := d.Suggestions()
	if len(got) != 4 {
		t.Fatalf("Suggestions() = %v, want 4 entries", got)
	}
	if got[0] != "Show me customers" || got[1] != "Show me orders" {
		t.Errorf("table suggestions = %v", got[:2])
	}
	if !strings.Contains(got[len(got)-1], "chart") {
		t.Errorf("final canned suggestion = %q", got[len(got)-1])
	}
}

func TestSuggestionsNilDigest(t *testing.T) {
	var d *Digest
	got := d.Suggestions()
	if len(got) != 2 {
		t.Errorf("nil digest Suggestions() = %v, want the canned pair", got)
	}
	if d.Overview() != "" {
		t.Errorf("nil digest Overview() = %q, want empty", d.Overview())
	}
}

func TestOverview(t *testing.T) {
	d := &Digest{TableCount: 7}
	if got := d.Overview(); got != "Connected database has 7 tables." {
		t.Errorf("Overview() = %q", got)
	}
}
