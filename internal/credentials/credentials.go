// Package credentials loads API tokens from the operator's config files.
// Missing credentials are not fatal; collectors report their source as
// unavailable instead.
package credentials

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// AirtableToken reads the Airtable API key from a secrets.env file.
// Accepted line forms: KEY=value, KEY="value", export KEY="value".
// Returns an empty token without error when the file does not exist.
func AirtableToken(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open secrets file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
		if key != "AIRTABLE_API_KEY" {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read secrets file: %w", err)
	}

	return "", nil
}

// googleToken matches the token JSON written by the token helper.
// Older files use "token" instead of "access_token".
type googleToken struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// GoogleToken reads the Google API bearer token from a token JSON file.
// Returns an empty token without error when the file does not exist.
func GoogleToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	var token googleToken
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("parse token file: %w", err)
	}

	if token.AccessToken != "" {
		return token.AccessToken, nil
	}
	return token.Token, nil
}
