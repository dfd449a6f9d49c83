package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/foxshop-service/internal/app/product/repo"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/committer"
)

// SetupSpannerTest creates a test Spanner client and returns a cleanup function.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	ctx := context.Background()

	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// SetupSpannerStores wires the Spanner repositories over a clean database.
func SetupSpannerStores(t *testing.T) (*Stores, *spanner.Client, func()) {
	t.Helper()

	client, cleanup := SetupSpannerTest(t)
	stores := &Stores{
		Products: repo.NewProductRepo(client, committer.NewCommitter(client)),
		History:  repo.NewPriceHistoryRepo(client),
		Reads:    repo.NewReadModel(client),
	}
	return stores, client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("TEST_SPANNER_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/product-catalog-test"
}

// CleanDatabase deletes all rows for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	// Children first: price_history is interleaved with ON DELETE NO ACTION
	mutations := []*spanner.Mutation{
		spanner.Delete(m_price_history.TableName, spanner.AllKeys()),
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	err = row.Columns(&count)
	require.NoError(t, err, "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
