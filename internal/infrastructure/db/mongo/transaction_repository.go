package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestioplus/gestio-api/internal/core/domain"
	"github.com/gestioplus/gestio-api/internal/core/ports"
)

const transactionCollection = "transactions"

// TransactionRepository implements ports.TransactionRepository on MongoDB.
type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionCollection)}
}

type transactionDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AccountID     string             `bson:"account_id"`
	Amount        float64            `bson:"amount"`
	Type          string             `bson:"type"`
	Category      string             `bson:"category"`
	Date          time.Time          `bson:"date"`
	Description   string             `bson:"description,omitempty"`
	TenantSession string             `bson:"tenant_session"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d transactionDoc) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:            d.ID.Hex(),
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		Type:          domain.TransactionType(d.Type),
		Category:      d.Category,
		Date:          d.Date,
		Description:   d.Description,
		TenantSession: d.TenantSession,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ListByTenant returns tenant transactions newest first; limit <= 0 means all.
func (r *TransactionRepository) ListByTenant(ctx context.Context, tenant string, limit int64) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"tenant_session": tenant}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	transactions := []domain.Transaction{}
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		transactions = append(transactions, doc.toDomain())
	}
	return transactions, cursor.Err()
}

func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := transactionDoc{
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		Type:          string(tx.Type),
		Category:      tx.Category,
		Date:          tx.Date,
		Description:   tx.Description,
		TenantSession: tx.TenantSession,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	created := *tx
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id, tenant string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Amount != nil {
		set["amount"] = *in.Amount
	}
	if in.Type != nil {
		set["type"] = string(*in.Type)
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Date != nil {
		set["date"] = *in.Date
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "tenant_session": tenant}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, tenant string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "tenant_session": tenant})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// TotalsByType aggregates income and expense sums for one tenant.
func (r *TransactionRepository) TotalsByType(ctx context.Context, tenant string) (ports.TransactionTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tenant_session": tenant}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.TransactionTotals{}, fmt.Errorf("aggregate totals: %w", err)
	}
	defer cursor.Close(ctx)

	var totals ports.TransactionTotals
	for cursor.Next(ctx) {
		var row struct {
			Type  string  `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return ports.TransactionTotals{}, fmt.Errorf("decode totals: %w", err)
		}
		switch domain.TransactionType(row.Type) {
		case domain.TransactionIncome:
			totals.Income = row.Total
		case domain.TransactionExpense:
			totals.Expense = row.Total
		}
	}
	return totals, cursor.Err()
}

// EnsureIndexes creates the tenant lookup index and the newest-first sort index.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_session", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
