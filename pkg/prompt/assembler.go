// Package prompt assembles the system prompt: assistant role, SPEAR
// dataset reference, language policy, confidence rubric, and excerpts
// from the local knowledge base.
package prompt

import (
	"strings"

	"github.com/spear-lab/spearchat/pkg/llm"
)

// defaultMaxKBTokens caps how much knowledge-base text the prompt absorbs.
const defaultMaxKBTokens = 20000

// Assembler builds system prompts from embedded sections and the SPEAR
// reference tables.
type Assembler struct {
	// MaxKBTokens caps knowledge-base excerpts; zero means the default.
	MaxKBTokens int
}

// Assemble composes the full system prompt. kbExcerpts are appended in
// order until the token cap is reached; later excerpts are dropped whole.
func (a *Assembler) Assemble(kbExcerpts []string) string {
	parts := []string{
		loadPrompt("role"),
		datasetReference(),
		loadPrompt("vocabulary"),
		loadPrompt("confidence"),
	}

	if kb := a.knowledgeSection(kbExcerpts); kb != "" {
		parts = append(parts, kb)
	}

	return strings.Join(parts, "\n\n")
}

func (a *Assembler) knowledgeSection(excerpts []string) string {
	if len(excerpts) == 0 {
		return ""
	}

	budget := a.MaxKBTokens
	if budget <= 0 {
		budget = defaultMaxKBTokens
	}

	var b strings.Builder
	b.WriteString("## Reference Material\n\n")
	b.WriteString("The following excerpts come from SPEAR documentation and configuration files. Prefer them over general knowledge when they conflict.\n")

	used := 0
	for _, e := range excerpts {
		tokens := llm.EstimateTokens(e)
		if used+tokens > budget {
			continue
		}
		used += tokens
		b.WriteString("\n---\n\n")
		b.WriteString(e)
	}

	if used == 0 {
		return ""
	}
	return b.String()
}
