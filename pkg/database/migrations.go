package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}
	err := m.db.Collection("schema_migrations").
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return doc.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("schema_migrations").InsertOne(ctx, bson.M{
		"version":    version,
		"applied_at": time.Now(),
	})
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "2dsphere indexes for emergency request and hospital locations",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("emergency_requests").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{{Key: "location", Value: "2dsphere"}},
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("hospitals").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{{Key: "location", Value: "2dsphere"}},
				})
				return err
			},
		},
		{
			Version:     2,
			Description: "lookup indexes for creator/status scans and owner profiles",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("emergency_requests").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "status", Value: 1}}},
					{Keys: bson.D{{Key: "accepted_by", Value: 1}, {Key: "status", Value: 1}}},
					{Keys: bson.D{{Key: "finalized_hospital", Value: 1}, {Key: "status", Value: 1}}},
				})
				if err != nil {
					return err
				}

				unique := options.Index().SetUnique(true)
				_, err = db.Collection("hospitals").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "owner", Value: 1}},
					Options: unique,
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("patients").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "owner", Value: 1}},
					Options: unique,
				})
				return err
			},
		},
	}
}
