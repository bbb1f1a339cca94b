package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/prisynced/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays values from environment variables. A dotenv file
// (-env, default .env) is loaded first if it exists; variables already set
// in the process environment win over the file.
//
// A malformed dotenv file panics, like a malformed JSON config.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&config.EndpointAddrHTTP, "HTTP_ADDRESS")
	envString(&config.EndpointAddrGRPC, "GRPC_ADDRESS")
	envString(&config.StorageBackend, "STORAGE_BACKEND")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	envString(&config.AWSRegion, "AWS_REGION")
	envString(&config.AWSBaseEndpoint, "AWS_ENDPOINT_URL")
	envString(&config.AWSAccessKeyID, "AWS_ACCESS_KEY_ID")
	envString(&config.AWSSecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	envString(&config.AWSSessionToken, "AWS_SESSION_TOKEN")
	envString(&config.PriceDropTopicARN, "SNS_PRICE_DROP_TOPIC_ARN")
	envString(&config.StockRestockTopicARN, "SNS_STOCK_RESTOCK_TOPIC_ARN")
	envString(&config.UsersTable, "DYNAMODB_USERS_TABLE")
	envString(&config.ProductsTable, "DYNAMODB_PRODUCTS_TABLE")
	envString(&config.UserProductsIndex, "DYNAMODB_USER_PRODUCTS_INDEX")
	envString(&config.SupportedDomain, "SUPPORTED_DOMAIN")
	envString(&config.LogBackend, "LOG_BACKEND")
	envString(&config.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}

	if v, ok := os.LookupEnv("SCOPED_DELETE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.ScopedDelete = b
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
