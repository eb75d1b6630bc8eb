package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// FetchAccessToken exchanges the Daraja consumer key/secret for a short-lived
// bearer token. Every STK push re-authenticates; tokens are never cached or
// persisted. All failure modes collapse into a single authorization error so
// callers cannot leak credential details.
func (s *MpesaService) FetchAccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.TokenURL+"?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("mpesa authorization failed: %v", err)
	}

	req.SetBasicAuth(s.ConsumerKey, s.ConsumerSecret)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpesa authorization failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mpesa authorization failed: token API returned status %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("mpesa authorization failed: %v", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("mpesa authorization failed: empty access token in response")
	}

	return tokenResp.AccessToken, nil
}
