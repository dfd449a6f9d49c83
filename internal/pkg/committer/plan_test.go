package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty(), "nil mutations are ignored")

	plan.Add(spanner.Insert("products", []string{"product_id"}, []interface{}{int64(1)}))
	plan.Add(spanner.Insert("price_history", []string{"product_id", "history_id"}, []interface{}{int64(1), int64(2)}))

	assert.False(t, plan.IsEmpty())
	assert.Len(t, plan.Mutations(), 2)
}

func TestCommitter_ApplyEmptyPlan(t *testing.T) {
	// An empty plan never touches the client.
	c := NewCommitter(nil)
	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
}
