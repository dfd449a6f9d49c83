// Package committer collects Spanner mutations into a plan and applies them atomically.
//
// Repositories build mutations without applying them. A caller gathers the
// mutations for everything that must change together into a CommitPlan and
// hands it to a Committer, so either all rows are written or none are.
//
// Typical flow for a product update that also changes the price:
//
//	plan := committer.NewPlan()
//	plan.Add(productModel.UpdateMut(id, updates))
//	plan.Add(historyModel.InsertMut(row))
//	return c.Apply(ctx, plan)
//
// When a plan needs values that can only be read inside the transaction,
// such as sequence numbers for new rows, use ApplyPlan with a builder
// function instead.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// PlanBuilder builds a CommitPlan inside a read-write transaction.
// It may read through txn but must not buffer writes itself.
type PlanBuilder func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*CommitPlan, error)

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyPlan runs build inside a read-write transaction and buffers the
// resulting plan in that same transaction. Spanner may retry the function
// when the transaction aborts, so build must not have side effects outside
// the transaction other than overwriting its own outputs.
func (c *Committer) ApplyPlan(ctx context.Context, build PlanBuilder) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan, err := build(ctx, txn)
		if err != nil {
			return err
		}
		if plan == nil || plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
