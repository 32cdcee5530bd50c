package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"intellidocs/internal/chunker"
	"intellidocs/internal/config"
	"intellidocs/internal/domain"
	"intellidocs/internal/embedding/hashing"
	"intellidocs/internal/extract"
	"intellidocs/internal/retriever"
	"intellidocs/internal/summarizer"
	"intellidocs/internal/tui"
)

const summarySentences = 3

// querier adapts the retrieval service to the TUI, binding the corpus
// built at startup.
type querier struct {
	svc    *retriever.Service
	corpus *retriever.Corpus
}

func (q *querier) Query(query string, topK int) ([]domain.RankedChunk, error) {
	return q.svc.Query(context.Background(), q.corpus, query, topK)
}

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/intellidocs/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: intellidocs-tui [--config=config.yaml] file1.txt [file2.pdf ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	docs := make([]domain.Document, 0, len(inputs))
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", path, err)
		}
		docs = append(docs, domain.Document{Name: filepath.Base(path), Data: data})
	}

	dim := 0
	if cfg.Embedder.Hashing != nil {
		dim = cfg.Embedder.Hashing.Dimension
	}
	emb := hashing.NewEmbedder(dim)

	ch, err := chunker.NewWordChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap, cfg.Chunker.MinChunkSize)
	if err != nil {
		log.Fatalf("invalid chunker config: %v", err)
	}

	svc := retriever.NewService(extract.New(), emb, ch, zap.NewNop())
	corpus, err := svc.Ingest(context.Background(), docs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	texts := make([]string, len(corpus.Chunks))
	for i, c := range corpus.Chunks {
		texts[i] = c.Text
	}
	summary, err := summarizer.NewFrequencySummarizer().Summarize(strings.Join(texts, " "), summarySentences)
	if err != nil {
		summary = ""
	}

	m := tui.New(&querier{svc: svc, corpus: corpus}, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
