package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokAttempts   = 10
	ngrokRetryDelay = 3 * time.Second
)

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// detectNgrokURL asks a local ngrok agent for its public HTTPS tunnel, so a
// dev setup gets a reachable webhook URL without manual config. Retries
// while ngrok is still starting up.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= ngrokAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokRetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create ngrok API request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		var tunnels ngrokTunnels
		err = json.NewDecoder(resp.Body).Decode(&tunnels)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
		}

		for _, t := range tunnels.Tunnels {
			if t.Proto == "https" {
				return t.PublicURL, nil
			}
		}
		if len(tunnels.Tunnels) > 0 {
			return tunnels.Tunnels[0].PublicURL, nil
		}
		lastErr = fmt.Errorf("no active tunnels yet")
	}

	return "", fmt.Errorf("ngrok not usable after %d attempts: %w", ngrokAttempts, lastErr)
}
