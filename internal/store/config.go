package store

import (
	"context"

	"checkin-example-app/internal/config"
)

// FromConfig builds the DynamoDB-backed store described by cfg.
func FromConfig(ctx context.Context, cfg *config.Config) (*DynamoStore, error) {
	client, err := NewDynamoClient(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return NewDynamoStore(client, cfg.TableName, cfg.Timeout), nil
}
