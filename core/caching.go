package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/schema"
)

// currentSnapshotVersion defines the version of the snapshot schema
const currentSnapshotVersion = 1

// cachedFetchIssues returns the issue collection for the configured
// repository, serving a fresh snapshot from the store when one exists.
// --refresh bypasses the snapshot entirely.
func cachedFetchIssues(ctx context.Context, cfg *contract.Config, src contract.IssueSource, mgr contract.StoreManager) ([]schema.Issue, error) {
	var store contract.SnapshotStore
	if mgr != nil {
		store = mgr.GetSnapshotStore()
	}
	if store == nil || cfg.Refresh {
		return src.ListIssues(ctx, cfg.Repository, cfg.IssueState)
	}

	key := generateSnapshotKey(cfg)

	// Check for snapshot hit
	if issues := checkSnapshotHit(store, key, cfg.SnapshotTTL); issues != nil {
		return issues, nil
	}

	// Snapshot miss: fetch and store
	return fetchAndStore(ctx, cfg, src, store, key)
}

// checkSnapshotHit attempts to retrieve and validate a stored snapshot
func checkSnapshotHit(store contract.SnapshotStore, key string, ttl time.Duration) []schema.Issue {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Snapshot miss
	}

	// Validate version and staleness
	if version == currentSnapshotVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= ttl {
			var issues []schema.Issue
			if err := json.Unmarshal(data, &issues); err == nil {
				return issues // Snapshot hit
			}
		}
	}

	return nil // Snapshot miss (stale or version mismatch)
}

// fetchAndStore fetches the issues and stores the snapshot
func fetchAndStore(ctx context.Context, cfg *contract.Config, src contract.IssueSource, store contract.SnapshotStore, key string) ([]schema.Issue, error) {
	issues, err := src.ListIssues(ctx, cfg.Repository, cfg.IssueState)
	if err != nil {
		return nil, err
	}

	// Store the snapshot. A nil slice would marshal to JSON null and read
	// back as a miss, so a repository with no issues is stored as [].
	if issues == nil {
		issues = []schema.Issue{}
	}
	if data, err := json.Marshal(issues); err == nil {
		_ = store.Set(key, data, currentSnapshotVersion, time.Now().Unix())
	}

	return issues, nil
}

// generateSnapshotKey creates a unique key based on fetch parameters.
// The token env var is part of the key: different tokens can see
// different issue sets for the same repository.
func generateSnapshotKey(cfg *contract.Config) string {
	key := fmt.Sprintf("%s:%s:%s", cfg.Repository, cfg.IssueState, cfg.TokenEnv)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
