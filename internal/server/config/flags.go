package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/prisynced/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-b string   storage backend: postgres, dynamodb or memory
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r string   AWS region
//	-e string   AWS base endpoint (e.g., "http://localhost:4566")
//	-p string   SNS price drop topic ARN
//	-k string   SNS stock restock topic ARN
//	-o string   supported retailer domain
//	-x bool     scoped delete
//	-l string   log backend: slog or zap
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first so -c / -env handled by
// other loaders do not trip this flag set. -x must use the -x=true form
// when followed by another argument.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-g", "-b", "-d", "-s", "-t", "-r", "-e", "-p", "-k", "-o", "-x", "-l", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AWSRegion, "r", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSBaseEndpoint, "e", config.AWSBaseEndpoint, "AWS base endpoint")
	fs.StringVar(&config.PriceDropTopicARN, "p", config.PriceDropTopicARN, "SNS price drop topic ARN")
	fs.StringVar(&config.StockRestockTopicARN, "k", config.StockRestockTopicARN, "SNS stock restock topic ARN")
	fs.StringVar(&config.SupportedDomain, "o", config.SupportedDomain, "supported retailer domain")
	fs.BoolVar(&config.ScopedDelete, "x", config.ScopedDelete, "only owners may remove tracked items")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
