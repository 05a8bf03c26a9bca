// Command spearchat serves a conversational interface to the GFDL SPEAR
// climate projection archive.
//
// Usage:
//
//	# Start with a local MCP data server and a knowledge-base directory
//	spearchat -config spearchat.yaml
//
//	# Override the listen address
//	spearchat -config spearchat.yaml -addr 0.0.0.0:9090
//
// Browsers connect at ws://<addr>/ws and exchange JSON text frames.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spear-lab/spearchat/pkg/agent"
	"github.com/spear-lab/spearchat/pkg/chat"
	"github.com/spear-lab/spearchat/pkg/config"
	"github.com/spear-lab/spearchat/pkg/guard"
	"github.com/spear-lab/spearchat/pkg/kb"
	"github.com/spear-lab/spearchat/pkg/llm"
	"github.com/spear-lab/spearchat/pkg/mcp"
	"github.com/spear-lab/spearchat/pkg/prompt"
	"github.com/spear-lab/spearchat/pkg/tools"
)

func main() {
	configPath := flag.String("config", "spearchat.yaml", "Path to the YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	kbDir := flag.String("kb", "", "Knowledge base directory (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr, *kbDir); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addrOverride, kbOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.Chat.ListenAddr = addrOverride
	}
	if kbOverride != "" {
		cfg.Knowledge.Dir = kbOverride
	}

	apiKey, err := cfg.APIKey()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := llm.NewClient(llm.ClientConfig{
		APIKey:    apiKey,
		Model:     cfg.Model.Name,
		MaxTokens: cfg.Model.MaxTokens,
	})

	conn := mcp.NewConn(cfg.DataServer)
	if err := conn.Connect(ctx); err != nil {
		return fmt.Errorf("connect data server: %w", err)
	}
	defer conn.Close()
	if info := conn.ServerInfo(); info != nil {
		log.Printf("connected to %s %s (%d tools)", info.Name, info.Version, len(conn.Tools()))
	}

	registry := tools.NewRegistry()
	tools.RegisterDataTools(registry, conn)

	g := guard.New(cfg.GuardSettings())

	prompts := newPromptSource(cfg.Knowledge)
	if err := prompts.reload(); err != nil {
		return err
	}
	if cfg.Knowledge.Dir != "" && cfg.Knowledge.Watch {
		watcher := kb.NewWatcher(cfg.Knowledge.Dir, func() {
			if err := prompts.reload(); err != nil {
				log.Printf("knowledge base reload: %v", err)
			}
		})
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("watch knowledge base: %w", err)
		}
		defer watcher.Stop()
	}

	server := &chat.Server{
		NewAgent: func() *agent.Agent {
			return agent.New(agent.Config{
				Client:       client,
				Registry:     registry,
				Guard:        g,
				SystemPrompt: prompts.current(),
				Temperature:  cfg.Model.Temperature,
			})
		},
		TurnTimeout: 5 * time.Minute,
	}

	log.Printf("listening on ws://%s/ws", cfg.Chat.ListenAddr)
	return server.Serve(ctx, cfg.Chat.ListenAddr)
}

// promptSource assembles the system prompt and rebuilds it when the
// knowledge base changes. New connections pick up the fresh prompt;
// running conversations keep the one they started with.
type promptSource struct {
	knowledge config.KnowledgeConfig
	assembler prompt.Assembler

	mu     sync.RWMutex
	prompt string
}

func newPromptSource(kc config.KnowledgeConfig) *promptSource {
	return &promptSource{knowledge: kc}
}

func (p *promptSource) reload() error {
	var excerpts []string
	if p.knowledge.Dir != "" {
		loader := &kb.Loader{UseCache: p.knowledge.UseCache == nil || *p.knowledge.UseCache}
		ix, err := loader.Load(p.knowledge.Dir)
		if err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}
		excerpts = ix.Excerpts()
		log.Printf("knowledge base: %d documents, ~%d tokens", len(ix.Docs), ix.TotalTokens())
	}

	assembled := p.assembler.Assemble(excerpts)

	p.mu.Lock()
	p.prompt = assembled
	p.mu.Unlock()
	return nil
}

func (p *promptSource) current() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prompt
}
