package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devlaunch/bootcamper/config"
	"github.com/devlaunch/bootcamper/internal/infrastructure/mongodb"
	"github.com/devlaunch/bootcamper/pkg/helpers"
)

// Seeds the database from the JSON fixtures in the data directory.
//
//	seed -i   import all data
//	seed -d   delete all data
func main() {
	_ = godotenv.Load()

	importData := flag.Bool("i", false, "import data")
	destroyData := flag.Bool("d", false, "destroy data")
	flag.Parse()
	if *importData == *destroyData {
		log.Fatal("pass exactly one of -i (import) or -d (destroy)")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	if *destroyData {
		for _, coll := range []string{"users", "bootcamps", "courses"} {
			if err := db.Collection(coll).Drop(ctx); err != nil {
				log.Fatalf("drop %s: %v", coll, err)
			}
		}
		fmt.Println("data destroyed")
		return
	}

	if err := seedUsers(ctx, db, filepath.Join(cfg.SeedDataDir, "users.json")); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	for _, coll := range []string{"bootcamps", "courses"} {
		path := filepath.Join(cfg.SeedDataDir, coll+".json")
		n, err := seedCollection(ctx, db, coll, path)
		if err != nil {
			log.Fatalf("seed %s: %v", coll, err)
		}
		fmt.Printf("seeded %d documents into %s\n", n, coll)
	}
	fmt.Println("data imported")
}

// seedUsers hashes the fixture passwords before insert so logins work against
// the seeded accounts. User ids stay fixed because bootcamp fixtures reference
// their owners.
func seedUsers(ctx context.Context, db *mongo.Database, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	docs := make([]any, 0, len(items))
	for _, item := range items {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(item, false, &doc); err != nil {
			return err
		}
		for i, el := range doc {
			if el.Key != "password" {
				continue
			}
			plain, _ := el.Value.(string)
			hash, err := helpers.HashPassword(plain)
			if err != nil {
				return err
			}
			doc[i].Value = hash
		}
		docs = append(docs, doc)
	}
	res, err := db.Collection("users").InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d documents into users\n", len(res.InsertedIDs))
	return nil
}

// seedCollection inserts a fixture file of extended-JSON documents, so fixture
// cross-references like {"$oid": ...} survive as real ObjectIDs.
func seedCollection(ctx context.Context, db *mongo.Database, coll, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, err
	}
	docs := make([]any, 0, len(items))
	for _, item := range items {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(item, false, &doc); err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}
	res, err := db.Collection(coll).InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
