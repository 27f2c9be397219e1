// internal/search/index.go
//
// Full-text index over published posts.
//
// Context
// -------
// Bleve keeps an on-disk index beside the binary (search.index_path in
// config).  Only published posts are indexed; drafts stay invisible and
// archiving a post removes it.  The index is derived data: Reindex rebuilds
// it from the database in one batch, which is also how boot reconciles a
// stale or missing index directory.
package search

import (
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/content"
)

// Index wraps a Bleve search index.
type Index struct {
	index bleve.Index
}

// indexedPost is the document shape stored in Bleve.
type indexedPost struct {
	Slug        string
	Title       string
	Excerpt     string
	Body        string
	Tags        []string
	PublishedAt time.Time
}

// Result is one search hit.
type Result struct {
	Slug      string              `json:"slug"`
	Title     string              `json:"title"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"` // highlighted snippets
}

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	return &Index{index: idx}, nil
}

// buildIndexMapping gives titles an English analyzer for better stemming;
// everything else uses the standard analyzer.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Slug", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("Title", titleFieldMapping)
	docMapping.AddFieldMappingsAt("Excerpt", textFieldMapping)
	docMapping.AddFieldMappingsAt("Body", textFieldMapping)
	docMapping.AddFieldMappingsAt("Tags", bleve.NewTextFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Close closes the index.
func (i *Index) Close() error { return i.index.Close() }

// IndexItem adds or updates one published post.
func (i *Index) IndexItem(it *content.Item) error {
	var published time.Time
	if it.PublishedAt != nil {
		published = *it.PublishedAt
	}
	return i.index.Index(it.Slug, &indexedPost{
		Slug:        it.Slug,
		Title:       it.Title,
		Excerpt:     it.Excerpt,
		Body:        it.Body,
		Tags:        it.Tags,
		PublishedAt: published,
	})
}

// Delete removes a post from the index (unpublish, archive).
func (i *Index) Delete(slug string) error { return i.index.Delete(slug) }

// Query runs a query-string search (supports quotes, boolean operators,
// fuzzy ~) and returns at most limit hits.
func (i *Index) Query(queryStr string, limit int) ([]*Result, error) {
	query := bleve.NewQueryStringQuery(queryStr)

	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Fields = []string{"Title", "Slug"}

	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var out []*Result
	for _, hit := range results.Hits {
		r := &Result{
			Slug:      hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		}
		if title, ok := hit.Fields["Title"].(string); ok {
			r.Title = title
		}
		out = append(out, r)
	}
	return out, nil
}

// Reindex replaces the index contents with items in one batch.  Callers
// pass the published pool; anything already indexed but absent from items
// is deleted.
func (i *Index) Reindex(items []*content.Item) error {
	keep := make(map[string]struct{}, len(items))
	batch := i.index.NewBatch()

	for _, it := range items {
		keep[it.Slug] = struct{}{}
		var published time.Time
		if it.PublishedAt != nil {
			published = *it.PublishedAt
		}
		doc := &indexedPost{
			Slug:        it.Slug,
			Title:       it.Title,
			Excerpt:     it.Excerpt,
			Body:        it.Body,
			Tags:        it.Tags,
			PublishedAt: published,
		}
		if err := batch.Index(it.Slug, doc); err != nil {
			return fmt.Errorf("batch index %s: %w", it.Slug, err)
		}
	}

	// Sweep stale entries.
	ids, err := i.allIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := keep[id]; !ok {
			batch.Delete(id)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Count returns the number of documents in the index.
func (i *Index) Count() (uint64, error) { return i.index.DocCount() }

// allIDs walks every document id via a match-all query.
func (i *Index) allIDs() ([]string, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 10000, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
