/*
 * Copyright 2026 The Inkwell Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mongo implements database interfaces using MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/inkwell-team/inkwell/server/backend/database"
	"github.com/inkwell-team/inkwell/server/logging"
)

// Client is a client that connects to Mongo DB and reads or saves Inkwell data.
type Client struct {
	config *Config
	client *mongo.Client
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	timeout, err := conf.ParseConnectionTimeout()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.ConnectionURI)
	if conf.MonitoringEnabled {
		threshold, err := conf.ParseSlowQueryThreshold()
		if err != nil {
			return nil, err
		}

		monitor := NewQueryMonitor(&MonitorConfig{
			Enabled:            conf.MonitoringEnabled,
			SlowQueryThreshold: threshold,
		})
		clientOptions.SetMonitor(monitor.CreateCommandMonitor())
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingTimeout, err := conf.ParsePingTimeout()
	if err != nil {
		return nil, err
	}
	ctxPing, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.InkwellDatabase)); err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof("MongoDB connected, URI: %s, DB: %s", conf.ConnectionURI, conf.InkwellDatabase)

	return &Client{
		config: conf,
		client: client,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	return nil
}

// DropDatabase drops the database of this client. It is used by tests.
func (c *Client) DropDatabase(ctx context.Context) error {
	if err := c.client.Database(c.config.InkwellDatabase).Drop(ctx); err != nil {
		return fmt.Errorf("drop database %s: %w", c.config.InkwellDatabase, err)
	}
	return nil
}

// CreateDocInfo stores a new document.
func (c *Client) CreateDocInfo(ctx context.Context, info *database.DocInfo) error {
	if _, err := c.collection(ColDocuments).InsertOne(ctx, info); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create document %s: %w", info.ID, database.ErrDocumentAlreadyExists)
		}
		return fmt.Errorf("create document %s: %w", info.ID, err)
	}

	return nil
}

// FindDocInfo finds the document of the given id.
func (c *Client) FindDocInfo(ctx context.Context, id string) (*database.DocInfo, error) {
	result := c.collection(ColDocuments).FindOne(ctx, aliveFilter(id))
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find document %s: %w", id, database.ErrDocumentNotFound)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("find document %s: %w", id, result.Err())
	}

	var info database.DocInfo
	if err := result.Decode(&info); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}

	return &info, nil
}

// FindDocInfos lists the documents that are not removed.
func (c *Client) FindDocInfos(ctx context.Context, paging database.Paging) ([]*database.DocInfo, error) {
	filter := bson.M{
		"removed_at": bson.M{"$exists": false},
	}

	order, op := -1, "$lt"
	if paging.IsForward {
		order, op = 1, "$gt"
	}
	if paging.Offset != "" {
		filter["_id"] = bson.M{op: paging.Offset}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: order}}).
		SetLimit(int64(paging.Size()))

	cursor, err := c.collection(ColDocuments).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var infos []*database.DocInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	return infos, nil
}

// UpdateDocInfo stores the given document if nobody updated it since it was
// read.
func (c *Client) UpdateDocInfo(ctx context.Context, info *database.DocInfo) (*database.DocInfo, error) {
	filter := aliveFilter(info.ID)
	filter["revision"] = info.Revision

	result := c.collection(ColDocuments).FindOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{
			"title":       info.Title,
			"author":      info.Author,
			"snapshot":    info.Snapshot,
			"block_count": info.BlockCount,
			"updated_at":  info.UpdatedAt,
		},
		"$inc": bson.M{
			"revision": 1,
		},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))

	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		if _, err := c.FindDocInfo(ctx, info.ID); err != nil {
			return nil, fmt.Errorf("update document %s: %w", info.ID, err)
		}
		return nil, fmt.Errorf("update document %s at revision %d: %w", info.ID, info.Revision, database.ErrConflictOnUpdate)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("update document %s: %w", info.ID, result.Err())
	}

	var updated database.DocInfo
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", info.ID, err)
	}

	return &updated, nil
}

// RemoveDocInfo marks the document of the given id as removed.
func (c *Client) RemoveDocInfo(ctx context.Context, id string, removedAt time.Time) error {
	result, err := c.collection(ColDocuments).UpdateOne(ctx, aliveFilter(id), bson.M{
		"$set": bson.M{
			"removed_at": removedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("remove document %s: %w", id, database.ErrDocumentNotFound)
	}

	return nil
}

// PurgeDocInfos deletes the documents removed before the given time.
func (c *Client) PurgeDocInfos(ctx context.Context, removedBefore time.Time) (int, error) {
	result, err := c.collection(ColDocuments).DeleteMany(ctx, bson.M{
		"removed_at": bson.M{"$lt": removedBefore},
	})
	if err != nil {
		return 0, fmt.Errorf("purge documents: %w", err)
	}

	return int(result.DeletedCount), nil
}

func (c *Client) collection(
	name string,
	opts ...options.Lister[options.CollectionOptions],
) *mongo.Collection {
	return c.client.
		Database(c.config.InkwellDatabase).
		Collection(name, opts...)
}

func aliveFilter(id string) bson.M {
	return bson.M{
		"_id":        id,
		"removed_at": bson.M{"$exists": false},
	}
}
