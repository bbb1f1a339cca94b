// Package models defines the records persisted by the identity and tracking
// stores.
package models

import "time"

// User is keyed by UserID, which is the user's email address.
//
// IsSubscribed caches a confirmed opt-in to alerts on the primary topic.
// It is only ever switched from false to true, after the provider reports
// the subscription as confirmed.
type User struct {
	UserID       string     `json:"user_id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	IsSubscribed bool       `json:"is_subscribed" dynamodbav:"is_subscribed"`
	PasswordHash string     `json:"-" dynamodbav:"password,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty" dynamodbav:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
}
