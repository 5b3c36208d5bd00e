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

const absenceCollection = "absences"

// AbsenceRepository implements ports.AbsenceRepository on MongoDB.
type AbsenceRepository struct {
	coll *mongo.Collection
}

func NewAbsenceRepository(db *mongo.Database) *AbsenceRepository {
	return &AbsenceRepository{coll: db.Collection(absenceCollection)}
}

type absenceDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID    string             `bson:"employee_id"`
	StartDate     time.Time          `bson:"start_date"`
	EndDate       time.Time          `bson:"end_date"`
	Reason        string             `bson:"reason"`
	Status        string             `bson:"status"`
	TenantSession string             `bson:"tenant_session"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d absenceDoc) toDomain() domain.Absence {
	return domain.Absence{
		ID:            d.ID.Hex(),
		EmployeeID:    d.EmployeeID,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Reason:        d.Reason,
		Status:        domain.AbsenceStatus(d.Status),
		TenantSession: d.TenantSession,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *AbsenceRepository) ListByTenant(ctx context.Context, tenant string) ([]domain.Absence, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"tenant_session": tenant})
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	defer cursor.Close(ctx)

	absences := []domain.Absence{}
	for cursor.Next(ctx) {
		var doc absenceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode absence: %w", err)
		}
		absences = append(absences, doc.toDomain())
	}
	return absences, cursor.Err()
}

func (r *AbsenceRepository) Insert(ctx context.Context, absence *domain.Absence) (*domain.Absence, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := absenceDoc{
		EmployeeID:    absence.EmployeeID,
		StartDate:     absence.StartDate,
		EndDate:       absence.EndDate,
		Reason:        absence.Reason,
		Status:        string(absence.Status),
		TenantSession: absence.TenantSession,
		CreatedAt:     absence.CreatedAt,
		UpdatedAt:     absence.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert absence: %w", err)
	}

	created := *absence
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AbsenceRepository) Update(ctx context.Context, id, tenant string, in ports.UpdateAbsenceInput) (*domain.Absence, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.StartDate != nil {
		set["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		set["end_date"] = *in.EndDate
	}
	if in.Reason != nil {
		set["reason"] = *in.Reason
	}
	if in.Status != nil {
		set["status"] = string(*in.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc absenceDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "tenant_session": tenant}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAbsenceNotFound
		}
		return nil, fmt.Errorf("update absence: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id, tenant string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "tenant_session": tenant})
	if err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAbsenceNotFound
	}
	return nil
}

func (r *AbsenceRepository) CountPending(ctx context.Context, tenant string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"tenant_session": tenant,
		"status":         string(domain.AbsencePending),
	})
	if err != nil {
		return 0, fmt.Errorf("count pending absences: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the tenant lookup index and the employee reference index.
func (r *AbsenceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_session", Value: 1}}},
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
