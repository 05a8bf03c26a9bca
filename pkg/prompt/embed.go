package prompt

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed prompts/*.md
var promptFiles embed.FS

var (
	promptCache   = make(map[string]string)
	promptCacheMu sync.RWMutex
)

// loadPrompt reads and caches an embedded prompt section by base name
// (e.g. "role" for prompts/role.md). Missing sections render empty.
func loadPrompt(name string) string {
	promptCacheMu.RLock()
	if v, ok := promptCache[name]; ok {
		promptCacheMu.RUnlock()
		return v
	}
	promptCacheMu.RUnlock()

	data, err := fs.ReadFile(promptFiles, "prompts/"+name+".md")
	if err != nil {
		return ""
	}
	content := string(data)

	promptCacheMu.Lock()
	promptCache[name] = content
	promptCacheMu.Unlock()
	return content
}
