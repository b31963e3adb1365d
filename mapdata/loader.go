package mapdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var log = logrus.WithField("module", "mapdata")

// LoadFile reads a campus map document from a JSON file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode map file %s: %w", path, err)
	}
	return &doc, nil
}

// LoadMongo fetches the campus map document from a collection. The
// collection is expected to hold a single document.
func LoadMongo(ctx context.Context, client *mongo.Client, db, coll string) (*Document, error) {
	var doc Document
	err := client.Database(db).Collection(coll).FindOne(ctx, bson.D{}).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("load map from %s.%s: %w", db, coll, err)
	}
	return &doc, nil
}

// LoadWithCache serves the document from cacheDir when present, otherwise
// runs fetch and writes the result back for the next start. An empty
// cacheDir disables caching.
func LoadWithCache(cacheDir, cacheKey string, fetch func() (*Document, error)) (*Document, error) {
	if cacheDir == "" {
		return fetch()
	}
	cachePath := filepath.Join(cacheDir, cacheKey)
	if _, err := os.Stat(cachePath); err == nil {
		log.Debugf("loading map from cache %s", cachePath)
		return LoadFile(cachePath)
	}
	doc, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := writeCache(cachePath, doc); err != nil {
		// cache write failure is not fatal, the document is already loaded
		log.Warnf("failed to write map cache %s: %v", cachePath, err)
	}
	return doc, nil
}

func writeCache(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
