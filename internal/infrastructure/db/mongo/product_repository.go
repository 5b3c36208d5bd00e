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

const productCollection = "products"

// ProductRepository implements ports.ProductRepository on MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productCollection)}
}

type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description,omitempty"`
	Quantity       int                `bson:"quantity"`
	Price          float64            `bson:"price"`
	AlertThreshold int                `bson:"alert_threshold"`
	Category       string             `bson:"category,omitempty"`
	TenantSession  string             `bson:"tenant_session"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Quantity:       d.Quantity,
		Price:          d.Price,
		AlertThreshold: d.AlertThreshold,
		Category:       d.Category,
		TenantSession:  d.TenantSession,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *ProductRepository) ListByTenant(ctx context.Context, tenant string) ([]domain.Product, error) {
	return r.list(ctx, bson.M{"tenant_session": tenant})
}

// ListLowStock filters on each product's own alert threshold unless a flat
// cutoff is supplied.
func (r *ProductRepository) ListLowStock(ctx context.Context, tenant string, threshold *int) ([]domain.Product, error) {
	filter := bson.M{
		"tenant_session": tenant,
		"$expr":          bson.M{"$lte": bson.A{"$quantity", "$alert_threshold"}},
	}
	if threshold != nil {
		filter = bson.M{
			"tenant_session": tenant,
			"quantity":       bson.M{"$lte": *threshold},
		}
	}
	return r.list(ctx, filter)
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, doc.toDomain())
	}
	return products, cursor.Err()
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDoc{
		Name:           product.Name,
		Description:    product.Description,
		Quantity:       product.Quantity,
		Price:          product.Price,
		AlertThreshold: product.AlertThreshold,
		Category:       product.Category,
		TenantSession:  product.TenantSession,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *product
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, id, tenant string, in ports.UpdateProductInput) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Quantity != nil {
		set["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.AlertThreshold != nil {
		set["alert_threshold"] = *in.AlertThreshold
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "tenant_session": tenant}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, tenant string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "tenant_session": tenant})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) CountLowStock(ctx context.Context, tenant string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"tenant_session": tenant,
		"$expr":          bson.M{"$lte": bson.A{"$quantity", "$alert_threshold"}},
	})
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the tenant lookup index.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_session", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
