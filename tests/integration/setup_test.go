//go:build integration

package integration

import (
	"testing"

	"github.com/light-bringer/foxshop-service/tests/testutil"
)

// backend opens one store over a clean database.
type backend struct {
	name  string
	setup func(t *testing.T) (*testutil.Stores, func())
}

// backends lists every persistent store. PostgreSQL is skipped when
// TEST_DATABASE_DSN is unset.
func backends() []backend {
	return []backend{
		{
			name: "spanner",
			setup: func(t *testing.T) (*testutil.Stores, func()) {
				stores, _, cleanup := testutil.SetupSpannerStores(t)
				return stores, cleanup
			},
		},
		{
			name: "postgres",
			setup: func(t *testing.T) (*testutil.Stores, func()) {
				stores, _, cleanup := testutil.SetupPostgresStores(t)
				return stores, cleanup
			},
		},
	}
}

// forEachBackend runs fn once per store as a subtest.
func forEachBackend(t *testing.T, fn func(t *testing.T, stores *testutil.Stores)) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			stores, cleanup := b.setup(t)
			defer cleanup()
			fn(t, stores)
		})
	}
}
