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

const employeeCollection = "employees"

// EmployeeRepository implements ports.EmployeeRepository on MongoDB.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeeCollection)}
}

type employeeDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Position       string             `bson:"position"`
	StartDate      time.Time          `bson:"start_date"`
	Status         string             `bson:"status"`
	Email          string             `bson:"email"`
	PhoneNumber    string             `bson:"phone_number,omitempty"`
	EducationLevel string             `bson:"education_level,omitempty"`
	Description    string             `bson:"description,omitempty"`
	TenantSession  string             `bson:"tenant_session"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d employeeDoc) toDomain() domain.Employee {
	return domain.Employee{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Position:       d.Position,
		StartDate:      d.StartDate,
		Status:         domain.EmployeeStatus(d.Status),
		Email:          d.Email,
		PhoneNumber:    d.PhoneNumber,
		EducationLevel: d.EducationLevel,
		Description:    d.Description,
		TenantSession:  d.TenantSession,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *EmployeeRepository) ListByTenant(ctx context.Context, tenant string) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"tenant_session": tenant})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []domain.Employee{}
	for cursor.Next(ctx) {
		var doc employeeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, doc.toDomain())
	}
	return employees, cursor.Err()
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := employeeDoc{
		Name:           employee.Name,
		Position:       employee.Position,
		StartDate:      employee.StartDate,
		Status:         string(employee.Status),
		Email:          employee.Email,
		PhoneNumber:    employee.PhoneNumber,
		EducationLevel: employee.EducationLevel,
		Description:    employee.Description,
		TenantSession:  employee.TenantSession,
		CreatedAt:      employee.CreatedAt,
		UpdatedAt:      employee.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *employee
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id, tenant string, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Position != nil {
		set["position"] = *in.Position
	}
	if in.StartDate != nil {
		set["start_date"] = *in.StartDate
	}
	if in.Status != nil {
		set["status"] = string(*in.Status)
	}
	if in.Email != nil {
		set["email"] = *in.Email
	}
	if in.PhoneNumber != nil {
		set["phone_number"] = *in.PhoneNumber
	}
	if in.EducationLevel != nil {
		set["education_level"] = *in.EducationLevel
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "tenant_session": tenant}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id, tenant string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "tenant_session": tenant})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) ExistsInTenant(ctx context.Context, id, tenant string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid, "tenant_session": tenant})
	if err != nil {
		return false, fmt.Errorf("employee lookup: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepository) CountByTenant(ctx context.Context, tenant string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"tenant_session": tenant})
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique email index and the tenant lookup index.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tenant_session", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
