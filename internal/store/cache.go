package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
)

// Differentiated cache durations.
const (
	searchCacheDuration = 24 * time.Hour     // High volume, changes often
	gameCacheDuration   = 7 * 24 * time.Hour // Moderate, stable
)

// MetadataCache caches provider responses on disk so repeated syncs do
// not re-hit rate-limited sources. Entries expire via Badger TTLs.
type MetadataCache struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenCache opens the cache database at the given path.
func OpenCache(path string, logger *slog.Logger) (*MetadataCache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	if logger != nil {
		logger.Info("metadata cache opened", "path", path)
	}

	return &MetadataCache{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *MetadataCache) Close() error {
	return c.db.Close()
}

func gameKey(provider, externalID string) []byte {
	return []byte("metadata:game:" + provider + ":" + externalID)
}

// searchKey hashes the query so arbitrary user input cannot produce
// unbounded or malformed keys.
func searchKey(provider, query string) []byte {
	sum := sha256.Sum256([]byte(query))
	return []byte("metadata:search:" + provider + ":" + hex.EncodeToString(sum[:]))
}

// GetGame retrieves a cached game record. Returns nil, nil on a miss or
// an expired entry.
func (c *MetadataCache) GetGame(provider, externalID string) (*metadata.GameMetadata, error) {
	var md *metadata.GameMetadata

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(provider, externalID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decoded metadata.GameMetadata
			if err := json.Unmarshal(val, &decoded); err != nil {
				return err
			}
			md = &decoded
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get game: %w", err)
	}
	return md, nil
}

// SetGame caches a game record for the game cache duration.
func (c *MetadataCache) SetGame(provider string, md *metadata.GameMetadata) error {
	data, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("cache encode game: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(gameKey(provider, md.ExternalID), data).WithTTL(gameCacheDuration)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache set game: %w", err)
	}
	return nil
}

// DeleteGame removes one cached game record. Idempotent.
func (c *MetadataCache) DeleteGame(provider, externalID string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(provider, externalID))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("cache delete game: %w", err)
	}
	return nil
}

// GetSearch retrieves cached search results for a query. Returns nil,
// nil on a miss.
func (c *MetadataCache) GetSearch(provider, query string) ([]metadata.SearchResult, error) {
	var results []metadata.SearchResult

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(searchKey(provider, query))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &results)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get search: %w", err)
	}
	return results, nil
}

// SetSearch caches search results for the search cache duration. Empty
// result sets are cached too, so a miss does not re-query the source.
func (c *MetadataCache) SetSearch(provider, query string, results []metadata.SearchResult) error {
	if results == nil {
		results = []metadata.SearchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("cache encode search: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(searchKey(provider, query), data).WithTTL(searchCacheDuration)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache set search: %w", err)
	}
	return nil
}
