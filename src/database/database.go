package database

import (
	"context"
	"fmt"

	"Backend-Student-Tracker/src/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	StudentCollectionName = "students"
	BadgeCollectionName   = "badges"
)

// MongoDB เก็บ client และ database ที่เชื่อมต่อแล้ว; main owns its lifecycle.
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongoDB เชื่อมต่อกับ MongoDB และ ping ก่อนคืนค่า
func ConnectMongoDB(ctx context.Context, cfg config.MongoConfig, log *zap.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// ตรวจสอบการเชื่อมต่อ
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.Info("✅ MongoDB connected successfully", zap.String("database", cfg.Database))
	return &MongoDB{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Disconnect ปิดการเชื่อมต่อ
func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// GetCollection รับ Collection จาก database ที่เชื่อมต่อไว้
func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// EnsureIndexes สร้าง unique index ของ email และ studentCode
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	students := m.GetCollection(StudentCollectionName)
	_, err := students.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "studentCode", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_student_code")},
	})
	if err != nil {
		return fmt.Errorf("failed to create student indexes: %w", err)
	}
	return nil
}
