package es

import "context"

type HealthChecker struct {
	client *Client
}

func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.client == nil {
		return false
	}

	ok, err := hc.client.es.Ping().Do(ctx)
	return err == nil && ok
}
