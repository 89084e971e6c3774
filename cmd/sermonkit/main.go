// Copyright 2026 Greation Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/greation/sermonkit"
	"github.com/greation/sermonkit/ai"
	"github.com/greation/sermonkit/ai/openai"
	"github.com/greation/sermonkit/blob"
	"github.com/greation/sermonkit/blob/fs"
	"github.com/greation/sermonkit/blob/s3"
	"github.com/greation/sermonkit/cache"
	"github.com/greation/sermonkit/core"
	"github.com/greation/sermonkit/library"
)

func main() {
	// Local development keeps tokens in a .env file; a missing file is fine.
	godotenv.Load()

	app := &cli.App{
		Name:  "sermonkit",
		Usage: "AI-assisted sermon preparation over a local illustration library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Refresh the embedding store from the illustration library",
				Action: syncCommand,
				Flags: append(storageFlags(), append(aiFlags(),
					&cli.BoolFlag{
						Name:  "reconcile",
						Usage: "Prune records missing from the library and re-embed changed ones",
					})...),
			},
			{
				Name:      "search",
				Usage:     "Search illustrations by semantic similarity",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(storageFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					})...),
			},
			{
				Name:   "analyze",
				Usage:  "Extract themes, emotional tones, and a summary from a draft",
				Action: analyzeCommand,
				Flags:  append(draftFlags(), aiFlags()...),
			},
			{
				Name:   "review",
				Usage:  "Generate editorial feedback on a draft",
				Action: reviewCommand,
				Flags:  append(draftFlags(), aiFlags()...),
			},
			{
				Name:   "recommend",
				Usage:  "Curate stored illustrations for a draft",
				Action: recommendCommand,
				Flags:  append(storageFlags(), append(draftFlags(), aiFlags()...)...),
			},
			{
				Name:   "guide",
				Usage:  "Compose an audience-tailored study guide from a draft",
				Action: guideCommand,
				Flags: append(draftFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:     "segment",
						Aliases:  []string{"s"},
						Usage:    "Audience segment (young_adults, adults, teens, children)",
						Required: true,
					})...),
			},
			{
				Name:   "prepare",
				Usage:  "Run curation, feedback, and study guide for a draft in one pass",
				Action: prepareCommand,
				Flags: append(storageFlags(), append(draftFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:     "segment",
						Aliases:  []string{"s"},
						Usage:    "Audience segment (young_adults, adults, teens, children)",
						Required: true,
					})...)...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Local data directory for embeddings, listings, and cache",
			Value:   "./sermonkit-data",
		},
		&cli.StringFlag{
			Name:  "library-key",
			Usage: "Key of the library listing document",
			Value: "library.json",
		},
		&cli.StringFlag{
			Name:  "store-key",
			Usage: "Key of the embedding store document",
			Value: "embeddings.json",
		},
		&cli.DurationFlag{
			Name:  "cache-ttl",
			Usage: "How long a fetched library listing stays fresh (0 disables caching)",
			Value: time.Hour,
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket holding the embeddings and listing documents (empty uses local disk)",
			EnvVars: []string{"SERMONKIT_S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "S3-compatible endpoint override, e.g. a minio URL",
			EnvVars: []string{"SERMONKIT_S3_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Usage:   "S3 region",
			Value:   "us-east-1",
			EnvVars: []string{"SERMONKIT_S3_REGION"},
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			Usage:   "Static S3 access key (empty uses the default AWS credential chain)",
			EnvVars: []string{"SERMONKIT_S3_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			Usage:   "Static S3 secret key",
			EnvVars: []string{"SERMONKIT_S3_SECRET_KEY"},
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generative-model",
			Usage: "Generative model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token (\"none\" for unauthenticated local services)",
			Value:   "none",
			EnvVars: []string{"SERMONKIT_API_TOKEN", "OPENAI_API_KEY"},
		},
	}
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "draft",
			Aliases: []string{"f"},
			Usage:   "Path to the sermon draft file (\"-\" reads stdin)",
			Value:   "-",
		},
	}
}

func aiConfig(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerativeModel(c.String("generative-model")),
		ai.WithToken(c.String("token")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

// openBackend picks the blob backend: an S3 bucket when one is named,
// the local data directory otherwise.
func openBackend(ctx context.Context, c *cli.Context) (blob.Backend, error) {
	if bucket := c.String("s3-bucket"); bucket != "" {
		client, err := s3.Connect(ctx, s3.Config{
			HostEndpointUrl: c.String("s3-endpoint"),
			Region:          c.String("s3-region"),
			Username:        c.String("s3-access-key"),
			Password:        c.String("s3-secret-key"),
		})
		if err != nil {
			return nil, err
		}
		return s3.NewBackend(client, bucket)
	}
	return fs.NewBackend(c.String("data"))
}

// buildAssistant wires the full assistant from CLI flags. The returned
// cleanup closes everything in reverse order.
func buildAssistant(ctx context.Context, c *cli.Context, extra ...sermonkit.AssistantOption) (*sermonkit.Assistant, func(), error) {
	cfg, err := aiConfig(c)
	if err != nil {
		return nil, nil, err
	}

	provider, err := openai.NewProvider(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	backend, err := openBackend(ctx, c)
	if err != nil {
		provider.Close()
		return nil, nil, fmt.Errorf("failed to open storage backend: %w", err)
	}

	var libraryProvider library.Provider
	libraryProvider, err = library.NewBlobProvider(backend, c.String("library-key"))
	if err != nil {
		provider.Close()
		return nil, nil, err
	}

	var listingCache *cache.Cache
	if ttl := c.Duration("cache-ttl"); ttl > 0 {
		listingCache, err = cache.Open(filepath.Join(c.String("data"), "listing-cache"), cache.WithTTL(ttl))
		if err != nil {
			provider.Close()
			return nil, nil, fmt.Errorf("failed to open listing cache: %w", err)
		}
		libraryProvider, err = library.NewCachedProvider(libraryProvider, listingCache, c.String("library-key"))
		if err != nil {
			listingCache.Close()
			provider.Close()
			return nil, nil, err
		}
	}

	opts := append([]sermonkit.AssistantOption{
		sermonkit.WithStoreKey(c.String("store-key")),
	}, extra...)

	assistant, err := sermonkit.NewAssistant(libraryProvider, backend, provider, opts...)
	if err != nil {
		if listingCache != nil {
			listingCache.Close()
		}
		provider.Close()
		return nil, nil, err
	}

	cleanup := func() {
		assistant.Close()
		if listingCache != nil {
			listingCache.Close()
		}
	}
	return assistant, cleanup, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so a
// long sync persists its partial progress instead of dying mid-pass.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func readDraft(c *cli.Context) (string, error) {
	path := c.String("draft")
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	draft := strings.TrimSpace(string(data))
	if draft == "" {
		return "", fmt.Errorf("draft is empty")
	}
	return draft, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func syncCommand(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	var extra []sermonkit.AssistantOption
	if c.Bool("reconcile") {
		extra = append(extra, sermonkit.WithReconcile())
	}

	assistant, cleanup, err := buildAssistant(ctx, c, extra...)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := assistant.Sync(ctx)
	if report != nil {
		fmt.Fprintf(os.Stderr, "added %d, dropped %d, removed %d, total %d, persisted %v\n",
			report.Added, report.Dropped, report.Removed, report.Total, report.Persisted)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	ctx, stop := signalContext()
	defer stop()

	assistant, cleanup, err := buildAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := assistant.SearchIllustrations(ctx, query, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no illustrations found")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s (%.3f)\n", i+1, result.Title, result.Similarity)
		if result.Summary != "" {
			fmt.Printf("   %s\n", result.Summary)
		}
		if result.SourceURL != "" {
			if offset := result.StartOffset(); offset > 0 {
				fmt.Printf("   %s (starts at %ds)\n", result.SourceURL, offset)
			} else {
				fmt.Printf("   %s\n", result.SourceURL)
			}
		}
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	draft, err := readDraft(c)
	if err != nil {
		return err
	}

	cfg, err := aiConfig(c)
	if err != nil {
		return err
	}
	provider, err := openai.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	ctx, stop := signalContext()
	defer stop()

	analysis, err := provider.Analyst().AnalyzeDraft(ctx, draft)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return printJSON(analysis)
}

func reviewCommand(c *cli.Context) error {
	draft, err := readDraft(c)
	if err != nil {
		return err
	}

	cfg, err := aiConfig(c)
	if err != nil {
		return err
	}
	provider, err := openai.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	ctx, stop := signalContext()
	defer stop()

	feedback, err := provider.Analyst().ReviewDraft(ctx, draft)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}
	return printJSON(feedback)
}

func recommendCommand(c *cli.Context) error {
	draft, err := readDraft(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	assistant, cleanup, err := buildAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	advice, err := assistant.RecommendIllustrations(ctx, draft)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	fmt.Printf("themes: %s\n", strings.Join(advice.Analysis.Themes, ", "))
	fmt.Printf("tones:  %s\n\n", strings.Join(advice.Analysis.Emotions, ", "))

	if len(advice.Picks) == 0 {
		fmt.Println("no illustrations matched this draft")
		return nil
	}
	for i, pick := range advice.Picks {
		fmt.Printf("%d. %s\n", i+1, pick.Title)
		fmt.Printf("   why: %s\n", pick.Reason)
		fmt.Printf("   use: %s\n", pick.UsageTip)
		if pick.SourceURL != "" {
			fmt.Printf("   %s\n", pick.SourceURL)
		}
	}
	return nil
}

func guideCommand(c *cli.Context) error {
	segment, err := core.ParseSegment(c.String("segment"))
	if err != nil {
		return fmt.Errorf("unknown segment %q (want young_adults, adults, teens, or children)", c.String("segment"))
	}

	draft, err := readDraft(c)
	if err != nil {
		return err
	}

	cfg, err := aiConfig(c)
	if err != nil {
		return err
	}
	provider, err := openai.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	ctx, stop := signalContext()
	defer stop()

	profile := core.SegmentProfiles[segment]
	guide, err := provider.Analyst().ComposeStudyGuide(ctx, draft, ai.GuideProfile{
		Audience:        profile.Label,
		AgeRange:        profile.AgeRange,
		Characteristics: profile.Characteristics,
		Tone:            profile.Tone,
		QuizLevel:       profile.QuizLevel,
	})
	if err != nil {
		return fmt.Errorf("guide composition failed: %w", err)
	}
	fmt.Println(guide)
	return nil
}

func prepareCommand(c *cli.Context) error {
	segment, err := core.ParseSegment(c.String("segment"))
	if err != nil {
		return fmt.Errorf("unknown segment %q (want young_adults, adults, teens, or children)", c.String("segment"))
	}

	draft, err := readDraft(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	assistant, cleanup, err := buildAssistant(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	workup, err := assistant.PrepareDraft(ctx, segment, draft)
	if err != nil {
		return fmt.Errorf("draft preparation failed: %w", err)
	}

	fmt.Println("## Analysis")
	if err := printJSON(workup.Advice.Analysis); err != nil {
		return err
	}

	fmt.Println("\n## Illustrations")
	for i, pick := range workup.Advice.Picks {
		fmt.Printf("%d. %s\n   why: %s\n   use: %s\n", i+1, pick.Title, pick.Reason, pick.UsageTip)
	}

	fmt.Println("\n## Feedback")
	if err := printJSON(workup.Feedback); err != nil {
		return err
	}

	fmt.Println("\n## Study Guide")
	fmt.Println(workup.Guide)
	return nil
}
