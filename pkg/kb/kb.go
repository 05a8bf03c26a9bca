// Package kb loads reference documents (SPEAR documentation, model
// configuration notes) from a local directory and turns them into prompt
// excerpts. Extracted text is cached on disk so PDFs are not re-parsed on
// every start.
package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/spear-lab/spearchat/pkg/llm"
)

// maxDocumentChars truncates a single document's extracted text.
const maxDocumentChars = 50000

// Document is one processed reference document.
type Document struct {
	Path    string    `json:"path"` // relative to the knowledge-base dir
	Format  string    `json:"format"`
	Text    string    `json:"text"`
	Tokens  int       `json:"tokens"`
	ModTime time.Time `json:"mod_time"`
}

// Index is the loaded knowledge base.
type Index struct {
	Dir      string     `json:"dir"`
	Docs     []Document `json:"docs"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Excerpts renders each document as a titled prompt excerpt, in path
// order.
func (ix *Index) Excerpts() []string {
	out := make([]string, 0, len(ix.Docs))
	for _, d := range ix.Docs {
		out = append(out, fmt.Sprintf("### %s\n\n%s", d.Path, d.Text))
	}
	return out
}

// TotalTokens sums the estimated token counts of all documents.
func (ix *Index) TotalTokens() int {
	total := 0
	for _, d := range ix.Docs {
		total += d.Tokens
	}
	return total
}

// Loader scans a directory for reference documents.
type Loader struct {
	// UseCache reads/writes the on-disk extraction cache.
	UseCache bool
}

// Load scans dir for supported documents and extracts their text.
// Unreadable or unparseable files are skipped, not fatal.
func (l *Loader) Load(dir string) (*Index, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("knowledge base dir: %w", err)
	}

	var cache *Index
	if l.UseCache {
		cache, _ = readCache(dir) // a missing or stale cache is fine
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.{pdf,txt,md,html}"))
	if err != nil {
		return nil, fmt.Errorf("scan knowledge base: %w", err)
	}
	sort.Strings(matches)

	ix := &Index{Dir: dir, LoadedAt: time.Now()}
	for _, path := range matches {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		if doc, ok := cachedDoc(cache, rel, info.ModTime()); ok {
			ix.Docs = append(ix.Docs, doc)
			continue
		}

		text, format, err := extract(path)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		if len(text) > maxDocumentChars {
			text = text[:maxDocumentChars] + "\n[... document truncated ...]"
		}

		ix.Docs = append(ix.Docs, Document{
			Path:    rel,
			Format:  format,
			Text:    text,
			Tokens:  llm.EstimateTokens(text),
			ModTime: info.ModTime(),
		})
	}

	if l.UseCache {
		_ = writeCache(ix) // cache failure never fails a load
	}
	return ix, nil
}

// cachedDoc returns the cached extraction for rel if it is still current.
func cachedDoc(cache *Index, rel string, modTime time.Time) (Document, bool) {
	if cache == nil {
		return Document{}, false
	}
	for _, d := range cache.Docs {
		if d.Path == rel && d.ModTime.Equal(modTime) {
			return d, true
		}
	}
	return Document{}, false
}
