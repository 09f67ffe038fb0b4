package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apiverify/swagschema/spec"
)

// specInput represents the two ways a Swagger document can be provided to a
// tool. Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// resolve loads the document, consulting the session cache first.
func (in specInput) resolve() (*spec.Document, error) {
	switch {
	case in.File != "" && in.Content != "":
		return nil, fmt.Errorf("provide either file or content, not both")
	case in.File == "" && in.Content == "":
		return nil, fmt.Errorf("one of file or content is required")
	}

	key, err := in.cacheKey()
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		if doc := docCache.get(key); doc != nil {
			return doc, nil
		}
	}

	var doc *spec.Document
	if in.File != "" {
		doc, err = spec.Load(spec.WithFilePath(in.File))
	} else {
		doc, err = spec.Load(spec.WithBytes([]byte(in.Content)))
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		docCache.put(key, doc)
	}
	return doc, nil
}

// cacheKey derives a cache key. File inputs use (absolutePath, modTime) so a
// changed file invalidates itself; content inputs hash the bytes.
func (in specInput) cacheKey() (string, error) {
	if in.File != "" {
		abs, err := filepath.Abs(in.File)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano()), nil
	}
	sum := sha256.Sum256([]byte(in.Content))
	return "content:" + hex.EncodeToString(sum[:]), nil
}

// cacheEntry holds a cached document with insertion time for LRU ordering
// and TTL expiry.
type cacheEntry struct {
	doc       *spec.Document
	insertAt  time.Time
	expiresAt time.Time
}

// docCacheStore is a session-scoped cache of loaded documents. Documents are
// immutable after load, so sharing one instance across tool calls is safe.
type docCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

var docCache = &docCacheStore{entries: make(map[string]*cacheEntry)}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *docCacheStore) get(key string) *spec.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.doc
}

// put stores a document, evicting the least recently touched entry when the
// cache is full.
func (c *docCacheStore) put(key string, doc *spec.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= cfg.CacheMaxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldest) {
				oldestKey, oldest = k, e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}

	now := time.Now()
	c.entries[key] = &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(cfg.CacheTTL)}
}
