package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Document describes one successfully ingested reference document.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title,omitempty"`
	Chunks     int       `json:"chunks"`
	IngestedAt time.Time `json:"ingested_at"`
}

// Registry is the thread-safe list of ingested documents, keyed by the
// content-hash document id.
type Registry struct {
	mu   sync.Mutex
	docs map[string]Document
}

func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]Document)}
}

func (r *Registry) Put(doc Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = time.Now()
	}
	r.docs[doc.ID] = doc
}

func (r *Registry) Get(id string) (Document, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	return doc, ok
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false
	}
	delete(r.docs, id)
	return true
}

// List returns all documents ordered by ingestion time, oldest first.
func (r *Registry) List() []Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IngestedAt.Equal(out[j].IngestedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].IngestedAt.Before(out[j].IngestedAt)
	})
	return out
}
