// Package contextindex stores ingested document chunks and retrieves
// the ones most relevant to a drafting prompt. Scoring is plain lexical
// term overlap — trees here are tens of documents with hundreds of
// chunks, rebuilt on every ingest, so an embedding store would be
// disproportionate.
package contextindex

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/mlevasseur/reportforge/internal/doctree"
)

// Entry is one indexed chunk.
type Entry struct {
	DocID      string   `json:"doc_id"`
	ChunkIndex int      `json:"chunk_index"`
	Breadcrumb []string `json:"breadcrumb"`
	Text       string   `json:"text"`
}

// Match is a scored retrieval result.
type Match struct {
	Entry
	Score float64 `json:"score"`
}

// Index is a thread-safe in-memory chunk index.
type Index struct {
	mu      sync.Mutex
	entries []Entry
	terms   []map[string]int // term frequencies, parallel to entries
}

func New() *Index {
	return &Index{}
}

// Add indexes all chunks of a document.
func (ix *Index) Add(docID string, chunks []doctree.Chunk) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, c := range chunks {
		ix.entries = append(ix.entries, Entry{
			DocID:      docID,
			ChunkIndex: c.Index,
			Breadcrumb: c.Breadcrumb,
			Text:       c.Text,
		})
		ix.terms = append(ix.terms, termFreq(c.Text))
	}
}

// Remove drops all chunks of a document.
func (ix *Index) Remove(docID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	var entries []Entry
	var terms []map[string]int
	for i, e := range ix.entries {
		if e.DocID != docID {
			entries = append(entries, e)
			terms = append(terms, ix.terms[i])
		}
	}
	ix.entries = entries
	ix.terms = terms
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.entries)
}

// Search returns up to k chunks scored by term overlap with the query.
// Chunks with no overlapping term are not returned.
func (ix *Index) Search(query string, k int) []Match {
	queryTerms := termFreq(query)
	if len(queryTerms) == 0 || k <= 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	var matches []Match
	for i, e := range ix.entries {
		score := 0.0
		for term := range queryTerms {
			if n, ok := ix.terms[i][term]; ok {
				score += float64(n)
			}
		}
		if score > 0 {
			// Normalize by chunk length so short relevant chunks are not
			// drowned out by long mildly-relevant ones.
			total := 0
			for _, n := range ix.terms[i] {
				total += n
			}
			matches = append(matches, Match{Entry: e, Score: score / float64(total)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// ContextText joins matches into a prompt-ready excerpt block.
func ContextText(matches []Match) string {
	var sb strings.Builder
	for _, m := range matches {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		if len(m.Breadcrumb) > 0 {
			sb.WriteString("[" + strings.Join(m.Breadcrumb, " > ") + "]\n")
		}
		sb.WriteString(m.Text)
	}
	return sb.String()
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopwords are skipped when scoring; mixed French/English since both
// appear in uploaded documents.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "les": true, "des": true, "une": true, "dans": true,
	"pour": true, "avec": true, "sur": true, "est": true, "qui": true,
}

func termFreq(text string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		freq[tok]++
	}
	return freq
}
