package database

import (
	"context"
	"errors"
	"regexp"
	"time"

	"Backend-Student-Tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned by repositories when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

const defaultQueryTimeout = 10 * time.Second

// StudentRepository เก็บ Student aggregate ทั้งก้อนใน collection students
type StudentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewStudentRepository(coll *mongo.Collection) *StudentRepository {
	return &StudentRepository{coll: coll, timeout: defaultQueryTimeout}
}

func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var student models.Student
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	student.Normalize()
	return &student, nil
}

func (r *StudentRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save แทนที่เอกสารทั้งก้อน (last writer wins). New embedded entries get their ids here.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	student.AssignEntryIDs()
	student.Normalize()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert สร้าง Student ใหม่ และกำหนด ID ให้
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	student.AssignEntryIDs()
	student.Normalize()
	if _, err := r.coll.InsertOne(ctx, student); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List ดึงนักเรียนตาม filter พร้อมแบ่งหน้า และคืนจำนวนทั้งหมดที่ตรงเงื่อนไข
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, params models.PaginationParams) ([]models.Student, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := BuildStudentFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	students := make([]models.Student, 0, params.Limit)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, 0, err
	}
	for i := range students {
		students[i].Normalize()
	}
	return students, total, nil
}

// FindConflict returns a student other than excludeID that already uses email or phone.
// Empty values are not matched. nil, nil means no conflict.
func (r *StudentRepository) FindConflict(ctx context.Context, email, phone string, excludeID primitive.ObjectID) (*models.Student, error) {
	var or bson.A
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if phone != "" {
		or = append(or, bson.M{"phone": phone})
	}
	if len(or) == 0 {
		return nil, nil
	}
	query := bson.M{"$or": or}
	if !excludeID.IsZero() {
		query["_id"] = bson.M{"$ne": excludeID}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var student models.Student
	err := r.coll.FindOne(ctx, query).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// BuildStudentFilter ต่อเงื่อนไขแบบ OR (case-insensitive) จากช่องที่ส่งมา
func BuildStudentFilter(filter models.StudentFilter) bson.M {
	var or bson.A
	add := func(field, value string) {
		if value == "" {
			return
		}
		or = append(or, bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}})
	}
	add("name", filter.Name)
	add("email", filter.Email)
	add("studentCode", filter.StudentCode)
	add("phone", filter.Phone)

	if len(or) == 0 {
		return bson.M{}
	}
	return bson.M{"$or": or}
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}
