package caching

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dtnitsch/styleguide-audit/models"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache keeps page audit results keyed by path and source, so a page that has
// not changed is not parsed and checked again.
type Cache struct {
	results *lru.LRU[string, models.PageAuditResult]
}

// NewCache creates a cache holding at most size results, each for ttl.
// A zero ttl keeps results until they are evicted.
func NewCache(size int, ttl time.Duration) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{results: lru.NewLRU[string, models.PageAuditResult](size, nil, ttl)}
}

// key hashes the document so edits invalidate its entry.
func (c *Cache) key(doc models.Document) string {
	hash := sha256.Sum256([]byte(doc.FilePath + "\x00" + doc.Source))
	return fmt.Sprintf("%x", hash)
}

// Get returns the cached result for doc, if its source is unchanged.
func (c *Cache) Get(doc models.Document) (models.PageAuditResult, bool) {
	return c.results.Get(c.key(doc))
}

// Set stores the result for doc.
func (c *Cache) Set(doc models.Document, res models.PageAuditResult) {
	c.results.Add(c.key(doc), res)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.results.Len()
}
