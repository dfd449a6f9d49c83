package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/foxshop-service/internal/app/product/contracts"
	"github.com/light-bringer/foxshop-service/internal/app/product/domain"
	"github.com/light-bringer/foxshop-service/internal/models/m_price_history"
	"github.com/light-bringer/foxshop-service/internal/models/m_product"
	"github.com/light-bringer/foxshop-service/internal/pkg/committer"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client       *spanner.Client
	committer    *committer.Committer
	model        *m_product.Model
	historyModel *m_price_history.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, comm *committer.Committer) contracts.ProductRepository {
	return &ProductRepo{
		client:       client,
		committer:    comm,
		model:        m_product.NewModel(),
		historyModel: m_price_history.NewModel(),
	}
}

// Create inserts a new product with an ID drawn from the products sequence.
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	var productID int64

	err := r.committer.ApplyPlan(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		id, err := nextSequenceValue(ctx, txn, m_product.SequenceName)
		if err != nil {
			return nil, err
		}
		productID = id

		data := domainToData(product)
		data.ProductID = id

		plan := committer.NewPlan()
		plan.Add(r.model.InsertMut(data))
		return plan, nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.AssignID(productID)
	product.MarkPersisted(nil)
	return nil
}

// Save writes the dirty columns and the pending price changes in one transaction.
func (r *ProductRepo) Save(ctx context.Context, product *domain.Product) ([]domain.PriceChange, error) {
	pending := product.PendingPriceChanges()
	updates := r.dirtyColumns(product)
	if len(updates) == 0 && len(pending) == 0 {
		return nil, nil
	}

	var historyIDs []int64

	err := r.committer.ApplyPlan(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		// Reset on every attempt; Spanner may rerun this function
		historyIDs = make([]int64, 0, len(pending))

		plan := committer.NewPlan()
		plan.Add(r.model.UpdateMut(product.ID(), updates))

		for _, change := range pending {
			id, err := nextSequenceValue(ctx, txn, m_price_history.SequenceName)
			if err != nil {
				return nil, err
			}
			historyIDs = append(historyIDs, id)

			plan.Add(r.historyModel.InsertMut(&m_price_history.Data{
				ProductID: product.ID(),
				HistoryID: id,
				OldPrice:  *change.OldPrice.Rat(),
				NewPrice:  *change.NewPrice.Rat(),
				ChangedAt: change.ChangedAt,
			}))
		}

		return plan, nil
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError(product.ID())
		}
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product.MarkPersisted(historyIDs), nil
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID int64) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError(productID)
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return dataToDomain(&data)
}

// Exists checks if a product exists.
func (r *ProductRepo) Exists(ctx context.Context, productID int64) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return true, nil
}

// dirtyColumns maps the aggregate's dirty fields to column updates.
func (r *ProductRepo) dirtyColumns(product *domain.Product) map[string]interface{} {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_product.Price] = product.Price().Rat()
	}
	if changes.Dirty(domain.FieldStockQuantity) {
		updates[m_product.StockQuantity] = product.StockQuantity()
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_product.IsActive] = product.IsActive()
	}

	if len(updates) > 0 {
		updates[m_product.UpdatedAt] = product.UpdatedAt()
	}

	return updates
}

// nextSequenceValue draws the next ID from a bit-reversed sequence.
func nextSequenceValue(ctx context.Context, txn *spanner.ReadWriteTransaction, sequence string) (int64, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT GET_NEXT_SEQUENCE_VALUE(SEQUENCE %s)", sequence),
	}

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", sequence, err)
	}

	var id int64
	if err := row.Column(0, &id); err != nil {
		return 0, fmt.Errorf("failed to parse sequence value: %w", err)
	}
	return id, nil
}
