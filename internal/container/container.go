package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/six-cities-api/config"
	filestore "github.com/oksasatya/six-cities-api/internal/infrastructure/storage"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// cmd/main fills it at startup; the router builds its modules from it.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client
	gcsClient   *storage.Client
	fileStore   filestore.Store

	tokens *helpers.TokenManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.Load()
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return logrus.StandardLogger()
}

// SetMongo stores the client and the application database.
func SetMongo(c *mongo.Client, db *mongo.Database) { mongoClient, mongoDB = c, db }
func GetMongoClient() *mongo.Client                { return mongoClient }
func GetMongoDB() *mongo.Database                  { return mongoDB }

func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetFileStore(s filestore.Store)          { fileStore = s }
func GetFileStore() filestore.Store           { return fileStore }
func SetTokens(m *helpers.TokenManager)       { tokens = m }
func GetTokens() *helpers.TokenManager        { return tokens }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// Reset clears every component; tests use it between cases.
func Reset() {
	cfg, logger = nil, nil
	mongoClient, mongoDB = nil, nil
	redisClient, gcsClient, fileStore = nil, nil, nil
	tokens, rabbitPub, esClient = nil, nil, nil
}
