package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/prisynced/internal/flagx"
	"github.com/dmitrijs2005/prisynced/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	StorageBackend              string          `json:"storage_backend"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AWSRegion                   string          `json:"aws_region"`
	AWSBaseEndpoint             string          `json:"aws_base_endpoint"`
	PriceDropTopicARN           string          `json:"sns_price_drop_topic_arn"`
	StockRestockTopicARN        string          `json:"sns_stock_restock_topic_arn"`
	UsersTable                  string          `json:"dynamodb_users_table"`
	ProductsTable               string          `json:"dynamodb_products_table"`
	UserProductsIndex           string          `json:"dynamodb_user_products_index"`
	SupportedDomain             string          `json:"supported_domain"`
	ScopedDelete                *bool           `json:"scoped_delete"`
	LogBackend                  string          `json:"log_backend"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config. Keys that
// are absent from the file leave the current value untouched. An unreadable
// or invalid file panics.
//
// AWS credentials are deliberately not read from JSON.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.AWSBaseEndpoint, c.AWSBaseEndpoint)
	setString(&config.PriceDropTopicARN, c.PriceDropTopicARN)
	setString(&config.StockRestockTopicARN, c.StockRestockTopicARN)
	setString(&config.UsersTable, c.UsersTable)
	setString(&config.ProductsTable, c.ProductsTable)
	setString(&config.UserProductsIndex, c.UserProductsIndex)
	setString(&config.SupportedDomain, c.SupportedDomain)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ScopedDelete != nil {
		config.ScopedDelete = *c.ScopedDelete
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
