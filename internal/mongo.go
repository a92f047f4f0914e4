package internal

import (
	"alba/config"
	"alba/entity"
	"alba/services"
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog       = "payment_log"
	collectionCallbacks = "callbacks"
)

type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
}

var ErrMongoDisabled = errors.New("mongo is disabled in configuration")

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, ErrMongoDisabled
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	err := connection.Disconnect(ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(ctx context.Context, data services.Data) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(ctx, data)
	return err
}

func (m *MongoDB) SaveCallback(ctx context.Context, callback *entity.Callback) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionCallbacks)
	if _, err = collection.InsertOne(ctx, callback); err != nil {
		return fmt.Errorf("insert callback %s: %w", callback.Tid, err)
	}
	return nil
}

// GetCallback returns the latest notification received for a transaction.
func (m *MongoDB) GetCallback(ctx context.Context, tid string) (*entity.Callback, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionCallbacks)
	filter := bson.D{{Key: "tid", Value: tid}}
	opt := options.FindOne().SetSort(bson.D{{Key: "time_received", Value: -1}})
	var callback entity.Callback
	if err = collection.FindOne(ctx, filter, opt).Decode(&callback); err != nil {
		return nil, err
	}
	return &callback, nil
}
