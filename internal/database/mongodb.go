package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"task-tracker/internal/config"
	"task-tracker/internal/models"
	"task-tracker/internal/taskerr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// mongoValidationCode is MongoDB's DocumentValidationFailure error code,
// returned when a write violates the collection $jsonSchema validator.
const mongoValidationCode = 121

// MongoDBClient wraps the MongoDB client for task persistence
type MongoDBClient struct {
	client   *mongo.Client
	database *mongo.Database
	tasks    *mongo.Collection
	log      *zap.Logger
}

// NewMongoDBClient connects to MongoDB and prepares the tasks collection:
// schema validator for required fields and the category enum, plus indexes
// on the sortable fields.
func NewMongoDBClient(cfg config.MongoDBConfig, log *zap.Logger) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Build connection URI
	uri := cfg.URI
	if uri == "" {
		// Build URI from components if URI not provided
		if cfg.Username != "" && cfg.Password != "" {
			// Use url.UserPassword to properly encode username and password
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(),
				cfg.Host,
				cfg.Port,
				cfg.Database,
				url.QueryEscape(cfg.AuthSource),
			)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s",
				cfg.Host,
				cfg.Port,
				cfg.Database,
			)
		}
	}

	// Log connection attempt (mask password for security)
	logURI := uri
	if cfg.Password != "" && cfg.Username != "" {
		userInfo := url.User(cfg.Username)
		authSource := cfg.AuthSource
		if authSource == "" {
			authSource = "admin"
		}
		logURI = fmt.Sprintf("mongodb://%s:***@%s:%s/%s?authSource=%s",
			userInfo.String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(authSource))
	}
	log.Info("Connecting to MongoDB", zap.String("uri", logURI))

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB at %s: %w", logURI, err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB at %s: %w", logURI, err)
	}

	database := client.Database(cfg.Database)

	c := &MongoDBClient{
		client:   client,
		database: database,
		tasks:    database.Collection(cfg.Collection),
		log:      log,
	}

	if err := c.ensureSchema(ctx, cfg.Collection); err != nil {
		// Validator setup can fail on restricted deployments, writes then rely
		// on the request validation layer alone
		log.Warn("MongoDB schema validator setup failed", zap.Error(err))
	}

	if err := c.ensureIndexes(ctx); err != nil {
		// Index might already exist, that's okay
		log.Warn("MongoDB index creation", zap.Error(err))
	}

	return c, nil
}

// taskValidator is the collection-level $jsonSchema enforcing the required
// fields and category enum, mirroring the request validation layer.
func taskValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"date", "company", "description", "category", "createdAt"},
			"properties": bson.M{
				"date":        bson.M{"bsonType": "date"},
				"company":     bson.M{"bsonType": "string", "minLength": 1},
				"description": bson.M{"bsonType": "string", "minLength": 1},
				"category": bson.M{
					"enum": models.Categories,
				},
				"createdAt": bson.M{"bsonType": "date"},
			},
		},
	}
}

func (c *MongoDBClient) ensureSchema(ctx context.Context, collection string) error {
	err := c.database.CreateCollection(ctx, collection, options.CreateCollection().SetValidator(taskValidator()))
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == 48 || cmdErr.Name == "NamespaceExists") {
		// Collection already exists, attach the validator via collMod
		return c.database.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: collection},
			{Key: "validator", Value: taskValidator()},
		}).Err()
	}
	return err
}

func (c *MongoDBClient) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "company", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := c.tasks.Indexes().CreateMany(ctx, indexes)
	return err
}

// Close closes the MongoDB client connection
func (c *MongoDBClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// parseObjectID distinguishes a malformed identifier from a missing one
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, taskerr.BadID("Invalid Task ID format")
	}
	return oid, nil
}

// InsertTask persists a new task and returns it with the assigned identifier
func (c *MongoDBClient) InsertTask(ctx context.Context, task models.Task) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := c.tasks.InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, writeError("failed to insert task", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return task, nil
}

// FindTaskByID retrieves a single task by its identifier
func (c *MongoDBClient) FindTaskByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task models.Task
	err = c.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, taskerr.NotFound("Task not found")
		}
		return nil, taskerr.Internal("failed to query task", err)
	}

	return &task, nil
}

// UpdateTaskByID applies a partial update and returns the updated document.
// Fields absent from the update are left untouched.
func (c *MongoDBClient) UpdateTaskByID(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if update.Company != nil {
		set["company"] = *update.Company
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err = c.tasks.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, taskerr.NotFound("Task not found")
		}
		return nil, writeError("failed to update task", err)
	}

	return &task, nil
}

// DeleteTaskByID removes a task. Deleting a missing task is a not-found error.
func (c *MongoDBClient) DeleteTaskByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return taskerr.Internal("failed to delete task", err)
	}
	if res.DeletedCount == 0 {
		return taskerr.NotFound("Task not found")
	}

	return nil
}

// FindTasks runs the filtered, sorted, paginated query and the matching count
// concurrently, since neither depends on the other.
func (c *MongoDBClient) FindTasks(ctx context.Context, q models.ListQuery) ([]models.Task, int64, error) {
	filter := buildListFilter(q)

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var (
		tasks []models.Task
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: q.SortBy, Value: q.Order}}).
			SetSkip(int64(q.Skip())).
			SetLimit(int64(q.Limit))
		cursor, err := c.tasks.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("failed to query tasks: %w", err)
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &tasks)
	})
	g.Go(func() error {
		var err error
		total, err = c.tasks.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, taskerr.Internal("failed to list tasks", err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, total, nil
}

// buildListFilter translates the normalized query into a Mongo filter: a
// case-insensitive substring $or across company/description/category for the
// search term, ANDed with exact category/company matches.
func buildListFilter(q models.ListQuery) bson.M {
	filter := bson.M{}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"company": pattern},
			bson.M{"description": pattern},
			bson.M{"category": pattern},
		}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Company != "" {
		filter["company"] = q.Company
	}

	return filter
}

// writeError classifies a write failure, surfacing schema validator rejections
// as validation errors rather than generic server failures.
func writeError(message string, err error) error {
	var writeExc mongo.WriteException
	if errors.As(err, &writeExc) {
		for _, we := range writeExc.WriteErrors {
			if we.Code == mongoValidationCode {
				return taskerr.Invalid("Validation Error", map[string]string{
					"document": "document failed collection schema validation",
				})
			}
		}
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == mongoValidationCode {
		return taskerr.Invalid("Validation Error", map[string]string{
			"document": "document failed collection schema validation",
		})
	}
	return taskerr.Internal(message, err)
}
