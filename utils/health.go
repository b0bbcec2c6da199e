package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports dependency liveness for the health endpoint.
type HealthStatus struct {
	Mongo bool `json:"mongo"`
	Redis bool `json:"redis"`
}

// CheckHealth pings the datastores with a short deadline.
func CheckHealth(client *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := HealthStatus{}
	if client != nil && client.Ping(ctx, nil) == nil {
		status.Mongo = true
	}
	if CacheClient != nil && CacheClient.Ping(ctx).Err() == nil {
		status.Redis = true
	}
	return status
}
