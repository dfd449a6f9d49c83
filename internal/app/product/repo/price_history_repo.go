package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/pkg/query"
)

// PriceHistoryRepo implements PriceHistoryRepository for Spanner.
type PriceHistoryRepo struct {
	client *spanner.Client
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo(client *spanner.Client) contracts.PriceHistoryRepository {
	return &PriceHistoryRepo{client: client}
}

// ListByProductID retrieves price history for a product, most recent first.
func (r *PriceHistoryRepo) ListByProductID(ctx context.Context, productID int64) ([]domain.PriceChange, error) {
	return readHistory(ctx, r.client.Single(), productID)
}

// historyQuery selects a product's history, newest first with the ID as tie-break.
func historyQuery(productID int64) spanner.Statement {
	return query.From(m_price_history.TableName).
		Select(m_price_history.Columns...).
		Where(query.Eq(m_price_history.ProductID, productID)).
		OrderBy(m_price_history.ChangedAt, query.Desc).
		ThenBy(m_price_history.HistoryID, query.Desc).
		Build()
}

// queryer is satisfied by spanner.ReadOnlyTransaction and the single-use transaction.
type queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func readHistory(ctx context.Context, q queryer, productID int64) ([]domain.PriceChange, error) {
	iter := q.Query(ctx, historyQuery(productID))
	defer iter.Stop()

	records := make([]domain.PriceChange, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate price history: %w", err)
		}

		var data m_price_history.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price history: %w", err)
		}

		record, err := historyDataToDomain(&data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
