package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zattar/dashboard_end/models"
	"github.com/zattar/dashboard_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// collection names
	LeadsCollection         = "leads_zattar"
	UsersCollection         = "users"
	OperationLogsCollection = "operation_logs"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB connects to MongoDB and selects the database.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")

	return nil
}

// CloseMongoDB disconnects from MongoDB.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
			return
		}
		utils.Logger.Info().Msg("disconnected from MongoDB")
	}
}

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// GetContext returns the shared background context for database calls.
func GetContext() context.Context {
	return ctx
}

// ExecuteDbOperation runs a database operation with retry on transient errors.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("database operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether the error is worth retrying.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common transport failures.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections ensures all collections exist and indexes are built.
func InitializeCollections() error {
	collections := []string{
		LeadsCollection,
		UsersCollection,
		OperationLogsCollection,
	}

	for _, collName := range collections {
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("failed to check collection: %w", err)
		}

		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("failed to create collection: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("collection created")
		}
	}

	// email uniqueness is enforced at the storage layer
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	return nil
}

// CollectionExists reports whether the collection exists.
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// InitializeAdminAccount creates the default admin user when none exists.
func InitializeAdminAccount() error {
	usersCollection := db.Collection(UsersCollection)

	count, err := usersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleADMIN})
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("admin account already exists, skipping bootstrap")
		return nil
	}

	adminUser := models.User{
		Email:     "admin@zattar.com.br",
		Name:      "Administrador",
		Password:  utils.HashPassword("admin123"),
		Role:      models.UserRoleADMIN,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := usersCollection.InsertOne(ctx, adminUser); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	utils.Logger.Info().Msg("default admin account created")
	return nil
}

// GetDatabaseStatus returns per-collection document counts.
func GetDatabaseStatus() (map[string]interface{}, error) {
	collections := []string{
		LeadsCollection,
		UsersCollection,
		OperationLogsCollection,
	}

	status := make(map[string]interface{})
	for _, collName := range collections {
		count, err := db.Collection(collName).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", collName, err)
		}
		status[collName] = count
	}

	return status, nil
}

// FetchAllLeads loads the complete lead snapshot, newest first. The
// aggregation layer does not depend on this ordering.
func FetchAllLeads(queryCtx context.Context) ([]models.Lead, error) {
	collection := Collection(LeadsCollection)

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	result, err := ExecuteDbOperation(func() (interface{}, error) {
		cursor, err := collection.Find(queryCtx, bson.M{}, findOptions)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(queryCtx)

		var leads []models.Lead
		if err := cursor.All(queryCtx, &leads); err != nil {
			return nil, err
		}
		return leads, nil
	}, 3)
	if err != nil {
		return nil, err
	}

	return result.([]models.Lead), nil
}
