package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TriggerGenerate posts to the regenerate endpoint and interprets its
// {success, error} response. Any failure leaves the caller's state
// untouched; it simply reports what went wrong.
func TriggerGenerate(ctx context.Context, client *http.Client, endpoint string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("reaching generator: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("unexpected response from generator: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return fmt.Errorf("generation failed: %s", out.Error)
		}
		return fmt.Errorf("generation failed")
	}
	return nil
}
