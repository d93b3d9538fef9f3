package cli

import (
	"testing"

	"github.com/m-mizutani/gt"
)

func TestGetIndexConfig(t *testing.T) {
	cfg := getIndexConfig()
	gt.NoError(t, cfg.Validate()).Required()

	gt.Array(t, cfg.Collections).Length(1).Required()

	col := cfg.Collections[0]
	gt.Value(t, col.Name).Equal("knowledge_graphs")
	gt.Array(t, col.Indexes).Length(2).Required()

	// Owner listing is ordered by most recent update
	list := col.Indexes[0]
	gt.Array(t, list.Fields).Length(2).Required()
	gt.Value(t, list.Fields[0].Path).Equal("user_id")
	gt.Value(t, list.Fields[1].Path).Equal("updated_at")

	// Name lookup is scoped to the owner
	byName := col.Indexes[1]
	gt.Array(t, byName.Fields).Length(2).Required()
	gt.Value(t, byName.Fields[0].Path).Equal("user_id")
	gt.Value(t, byName.Fields[1].Path).Equal("name")
}
