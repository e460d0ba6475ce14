package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hearthsocial/hearth/pkg/jwtx"
)

// InitVerificationKeys prepares the key material used to verify access
// tokens and serve /.well-known/jwks.json.
//
// Two modes:
//   - Remote (SECURITY_JWKS_URL set): the key set mirrors the identity
//     service's JWKS. It is fetched at startup and kept fresh by a
//     background refresher so upstream key rotation does not strand us.
//   - Local (default): ephemeral Ed25519 keys are minted on startup. Dev
//     and test rigs sign their own tokens against these; they vanish on
//     restart.
func InitVerificationKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, *keyRefresher, error) {
	if cfg.JWKSURL != "" {
		keys := jwtx.NewKeySet()

		logger.Info("fetching verification keys from identity service", "url", cfg.JWKSURL)
		if err := fetchJWKS(ctx, cfg.JWKSURL, keys); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to fetch JWKS from %s: %w", cfg.JWKSURL, err)
		}

		logger.Info("verification keys loaded",
			"num_keys", len(keys.PublicJWKS().Keys),
			"issuer", cfg.Issuer,
			"refresh_interval", cfg.JWKSRefreshInterval,
		)

		verifier := jwtx.NewCommonEdDSA(keys, cfg.Issuer, nil)
		refresher := newKeyRefresher(cfg.JWKSURL, keys, logger, cfg.JWKSRefreshInterval)
		return keys, verifier, refresher, nil
	}

	logger.Info("minting ephemeral verification keys", "num_keys", cfg.NumKeys)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: nil, // No audience validation: tokens carry a dynamic audience per client
		NumKeys:  cfg.NumKeys,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("local key mode: tokens from the identity service will NOT verify here")

	return keyManager.KeySet, keyManager.Verifier, nil, nil
}

// fetchJWKS downloads a JWKS document and swaps it into the key set.
func fetchJWKS(ctx context.Context, url string, keys *jwtx.KeySet) error {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var jwks jwtx.JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return fmt.Errorf("JWKS contained no keys")
	}

	return keys.ResetFromJWKS(jwks)
}

// keyRefresher re-fetches the identity service JWKS on an interval so
// verification keeps working across upstream key rotation. A failed fetch
// keeps the previous key set; stale keys beat no keys.
type keyRefresher struct {
	url      string
	keys     *jwtx.KeySet
	logger   *slog.Logger
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func newKeyRefresher(url string, keys *jwtx.KeySet, logger *slog.Logger, interval time.Duration) *keyRefresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &keyRefresher{
		url:      url,
		keys:     keys,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background refresher. Non-blocking; call Stop to shut
// it down.
func (r *keyRefresher) Start() {
	go r.run()
	r.logger.Info("jwks refresher started", "interval", r.interval)
}

// Stop signals the refresher to stop and waits for it to finish.
func (r *keyRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
	r.logger.Info("jwks refresher stopped")
}

func (r *keyRefresher) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := fetchJWKS(context.Background(), r.url, r.keys); err != nil {
				r.logger.Warn("jwks refresh failed, keeping previous keys", "error", err)
				continue
			}
			r.logger.Debug("jwks refreshed", "num_keys", len(r.keys.PublicJWKS().Keys))
		case <-r.stopCh:
			return
		}
	}
}
