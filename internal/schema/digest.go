// Package schema fetches a one-shot overview of the connected database
// for welcome-state suggestions.
package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmartins/dbchat/internal/api"
)

// maxTables caps how many table names the digest keeps.
const maxTables = 8

// Digest summarizes the available tables.
type Digest struct {
	TableCount int
	Tables     []string
}

// Fetch retrieves the schema and summarizes it. Any failure yields nil:
// the digest is purely decorative and a missing one is not an error.
func Fetch(ctx context.Context, client api.ClientInterface) *Digest {
	sch, err := client.FetchSchema(ctx)
	if err != nil || len(sch) == 0 {
		return nil
	}

	tables := make([]string, 0, len(sch))
	for name := range sch {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	d := &Digest{TableCount: len(tables)}
	if len(tables) > maxTables {
		tables = tables[:maxTables]
	}
	d.Tables = tables
	return d
}

// Suggestions builds welcome-state suggestion chips: one per table (up
// to four), plus a couple of canned ones.
func (d *Digest) Suggestions() []string {
	var out []string
	if d != nil {
		for i, t := range d.Tables {
			if i == 4 {
				break
			}
			out = append(out, fmt.Sprintf("Show me %s", t))
		}
	}
	out = append(out, "Count total records", "Show me monthly totals and a line chart")
	return out
}

// Overview returns the one-line summary shown in the welcome state, or
// the empty string when no digest is available.
func (d *Digest) Overview() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("Connected database has %d tables.", d.TableCount)
}
