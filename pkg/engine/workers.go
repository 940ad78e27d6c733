package engine

import (
	"sync"

	"github.com/dtnitsch/styleguide-audit/models"
)

type job struct {
	index int
	doc   models.Document
}

type result struct {
	index int
	page  models.PageAuditResult
}

// auditAll audits docs on e.Workers goroutines and returns the page results
// in input order.
func (e *Engine) auditAll(docs []models.Document) []models.PageAuditResult {
	pages := make([]models.PageAuditResult, len(docs))
	if e.Workers <= 1 || len(docs) < 2 {
		for i, doc := range docs {
			pages[i] = e.AuditPage(doc)
		}
		return pages
	}

	workers := min(e.Workers, len(docs))
	e.Logger.Debug("starting audit workers", "documents", len(docs), "workers", workers)
	var wg sync.WaitGroup
	jobs := make(chan job, len(docs))
	results := make(chan result, len(docs))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{index: j.index, page: e.AuditPage(j.doc)}
			}
		}()
	}

	for i, doc := range docs {
		jobs <- job{index: i, doc: doc}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for r := range results {
		pages[r.index] = r.page
	}
	return pages
}
