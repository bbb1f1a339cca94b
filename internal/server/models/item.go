package models

import "time"

// Item is a product URL tracked for one user.
//
// ProductURL is the primary key across all users: when a second user
// tracks a URL already tracked by someone else, the record changes owner.
// LastPrice stays nil until the external poller reports a price.
type Item struct {
	ProductURL string    `json:"product_url" dynamodbav:"product_url"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
	LastPrice  *float64  `json:"last_price" dynamodbav:"last_price"`
	InStock    bool      `json:"in_stock" dynamodbav:"in_stock"`
}
