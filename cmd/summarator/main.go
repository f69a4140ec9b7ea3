package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/astrocyte/Youtube-Summerator/internal/cache"
	"github.com/astrocyte/Youtube-Summerator/internal/config"
	"github.com/astrocyte/Youtube-Summerator/internal/fileutil"
	"github.com/astrocyte/Youtube-Summerator/internal/logger"
	"github.com/astrocyte/Youtube-Summerator/internal/output"
	"github.com/astrocyte/Youtube-Summerator/internal/summarizer"
	"github.com/astrocyte/Youtube-Summerator/internal/summary"
	"github.com/astrocyte/Youtube-Summerator/internal/textgen"
	"github.com/astrocyte/Youtube-Summerator/internal/token"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
	"github.com/astrocyte/Youtube-Summerator/internal/video"
	"github.com/astrocyte/Youtube-Summerator/internal/watcher"
)

type app struct {
	cfg             *config.Config
	logger          logger.Logger
	pipeline        summarizer.Summarizer
	writer          *output.Writer
	depth           summary.Depth
	model           string
	saveTranscripts bool
}

func main() {
	var (
		configPath      = flag.String("config", "config.yaml", "path to configuration file")
		depthFlag       = flag.String("depth", "", "summary depth: basic, detailed or technical")
		modelFlag       = flag.String("model", "", "model to summarize with")
		fileFlag        = flag.String("file", "", "file with one video URL per line")
		textFlag        = flag.String("text", "", "summarize a local plain-text file instead of a video")
		watchFlag       = flag.Bool("watch", false, "watch the input directory for URL list files")
		transcriptsFlag = flag.Bool("transcripts", false, "also write formatted transcripts")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	depthValue := *depthFlag
	if depthValue == "" {
		depthValue = cfg.Summary.DefaultDepth
	}
	depth, err := summary.ParseDepth(depthValue)
	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}

	model := *modelFlag
	if model == "" {
		model = cfg.Summary.DefaultModel
	}

	if err := ensureDirectories(cfg, *watchFlag); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	store, err := cache.New(cfg.Cache.Dir, log)
	if err != nil {
		log.Error(ctx, "Failed to open cache: %v", err)
		os.Exit(1)
	}
	if removed := store.Cleanup(cfg.Cache.MaxAgeDays); removed > 0 {
		log.Info(ctx, "Evicted %d stale cache entries", removed)
	}

	sanitizer := fileutil.Sanitizer{WindowsSafe: cfg.Output.WindowsSafeNames, MaxLength: 120}
	a := &app{
		cfg:    cfg,
		logger: log,
		pipeline: summarizer.New(
			cfg,
			token.New(),
			textgen.New(cfg.Gemini.APIKeys, log),
			transcript.NewYouTube("", log),
			store,
			log,
		),
		writer:          output.NewWriter(cfg.Paths.Output, sanitizer, cfg.Output.ExportDocx, log),
		depth:           depth,
		model:           model,
		saveTranscripts: *transcriptsFlag,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	switch {
	case *watchFlag:
		err = a.runWatch(ctx)
	case *textFlag != "":
		err = a.runText(ctx, *textFlag)
	case *fileFlag != "":
		err = a.runFile(ctx, *fileFlag)
	case flag.NArg() > 0:
		err = a.runBatch(ctx, flag.Args())
	default:
		fmt.Fprintln(os.Stderr, "Usage: summarator [flags] <video url or id>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

// runOne summarizes a single video and writes its outputs.
func (a *app) runOne(ctx context.Context, input string) error {
	result, err := a.pipeline.SummarizeVideo(ctx, input, a.depth, a.model, func(p summarizer.Progress) {
		a.logger.Info(ctx, "Progress: chunk %d/%d (about %.0fs remaining)", p.CurrentChunk, p.TotalChunks, p.ETASeconds)
	})
	if err != nil {
		return fmt.Errorf("summarize %s: %w", input, err)
	}

	if _, err := a.writer.WriteSummary(ctx, result.Title, result.Depth.String(), result.Summary); err != nil {
		return err
	}

	if a.saveTranscripts && len(result.Segments) > 0 {
		if _, err := a.writer.WriteTranscript(ctx, result.Title, result.Segments); err != nil {
			return err
		}
	}
	return nil
}

// runText summarizes a local text file, titling the output after the
// file name.
func (a *app) runText(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read text file: %w", err)
	}

	result, err := a.pipeline.SummarizeText(ctx, string(data), a.depth, a.model, func(p summarizer.Progress) {
		a.logger.Info(ctx, "Progress: chunk %d/%d (about %.0fs remaining)", p.CurrentChunk, p.TotalChunks, p.ETASeconds)
	})
	if err != nil {
		return fmt.Errorf("summarize %s: %w", path, err)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	_, err = a.writer.WriteSummary(ctx, title, result.Depth.String(), result.Summary)
	return err
}

// runBatch processes each input in order, reporting failures at the end
// instead of aborting the whole run.
func (a *app) runBatch(ctx context.Context, inputs []string) error {
	failures := 0
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.runOne(ctx, input); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failures++
			a.logger.Error(ctx, "%v", err)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d videos failed", failures, len(inputs))
	}
	return nil
}

// runFile reads one URL per line, skipping blanks and # comments.
func (a *app) runFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open url list: %w", err)
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !video.IsURL(line) {
			a.logger.Warn(ctx, "Skipping non-URL line in %s: %s", path, line)
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read url list: %w", err)
	}
	if len(inputs) == 0 {
		a.logger.Warn(ctx, "No URLs found in %s", path)
		return nil
	}

	a.logger.Info(ctx, "Processing %d videos from %s", len(inputs), path)
	return a.runBatch(ctx, inputs)
}

// runWatch blocks on the drop folder, handing each new URL list to
// runFile.
func (a *app) runWatch(ctx context.Context) error {
	if a.cfg.Paths.Input == "" {
		return fmt.Errorf("paths.input must be set for watch mode")
	}

	w, err := watcher.New(a.cfg.Paths.Input, a.runFile, a.logger, 1)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "Watching %s, press Ctrl+C to stop", a.cfg.Paths.Input)
	return w.Start(ctx)
}

func ensureDirectories(cfg *config.Config, watch bool) error {
	dirs := []string{cfg.Paths.Output, cfg.Cache.Dir}
	if watch && cfg.Paths.Input != "" {
		dirs = append(dirs, cfg.Paths.Input)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
