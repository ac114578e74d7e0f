package auth

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

const refreshTokenFile = "refresh_tokens.json"

// refreshTokenTTL bounds how long a session can be renewed without logging
// in again.
const refreshTokenTTL = 7 * 24 * time.Hour

type refreshEntry struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	mu                sync.Mutex
	loaded            bool
)

// SetRefreshToken stores a refresh token for a username and persists the store.
func SetRefreshToken(token, username string) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	refreshTokenStore[token] = refreshEntry{
		Username:  username,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	saveRefreshTokens()
}

// LookupRefreshToken resolves a refresh token to its username. Expired
// tokens are treated as absent.
func LookupRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	entry, ok := refreshTokenStore[token]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Username, true
}

// DeleteRefreshToken removes a refresh token (logout).
func DeleteRefreshToken(token string) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	delete(refreshTokenStore, token)
	saveRefreshTokens()
}

// StartRefreshTokenCleaner periodically drops expired refresh tokens.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		ensureLoaded()
		changed := false
		for token, entry := range refreshTokenStore {
			if time.Now().After(entry.ExpiresAt) {
				delete(refreshTokenStore, token)
				changed = true
			}
		}
		if changed {
			saveRefreshTokens()
		}
		mu.Unlock()
	}
}

func ensureLoaded() {
	if loaded {
		return
	}
	loaded = true
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("could not load refresh token file: %v", err)
		}
		return
	}
	if err := json.Unmarshal(data, &refreshTokenStore); err != nil {
		log.Printf("could not parse refresh token file: %v", err)
		refreshTokenStore = map[string]refreshEntry{}
	}
}

func saveRefreshTokens() {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(refreshTokenFile, data, 0600); err != nil {
		log.Printf("could not save refresh token file: %v", err)
	}
}
