package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"content-extract/pkg/config"
	"content-extract/pkg/domain"
	"content-extract/pkg/pipeline"
	"content-extract/pkg/youtube"
)

func main() {
	language := flag.String("l", "", "Preferred language code for YouTube transcripts (e.g. 'en', 'es')")
	sentimentType := flag.String("type", "positive", "Type of quotes to extract: positive or negative")
	topN := flag.Int("top", 5, "Number of top quotes to show")
	transcriptOnly := flag.Bool("transcript-only", false, "Output only the extracted content without sentiment analysis")
	raw := flag.Bool("raw", false, "Output raw JSON")
	workers := flag.Int("workers", 4, "Number of URLs to process concurrently")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: quotes [flags] URL [URL...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	kind := domain.SentimentKind(*sentimentType)
	if kind != domain.SentimentPositive && kind != domain.SentimentNegative {
		log.Fatalf("Invalid -type %q: must be positive or negative", *sentimentType)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	processor, err := pipeline.NewProcessor(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build processor: %v", err)
	}

	opts := pipeline.Options{Language: *language}
	if !*transcriptOnly {
		opts.Sentiment = &pipeline.SentimentOptions{Kind: kind, TopN: *topN}
	}

	outputs := processAll(ctx, processor, urls, opts, *workers, *transcriptOnly, *raw)

	exitCode := 0
	for _, out := range outputs {
		if out.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", out.url, out.err)
			exitCode = 1
			continue
		}
		fmt.Println(out.text)
	}
	os.Exit(exitCode)
}

type output struct {
	url  string
	text string
	err  error
}

// processAll runs the pipeline over every URL with a bounded worker pool,
// preserving input order in the returned outputs.
func processAll(ctx context.Context, processor *pipeline.Processor, urls []string, opts pipeline.Options, workers int, transcriptOnly, raw bool) []output {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(urls))
	for i := range urls {
		jobs <- i
	}
	close(jobs)

	outputs := make([]output, len(urls))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				url := urls[i]
				response, err := processor.Process(ctx, url, opts)
				if err != nil {
					outputs[i] = output{url: url, err: err}
					continue
				}
				outputs[i] = output{url: url, text: render(response, transcriptOnly, raw)}
			}
		}()
	}

	wg.Wait()
	return outputs
}

// render formats one pipeline response for the terminal.
func render(response *pipeline.Response, transcriptOnly, raw bool) string {
	if raw {
		data, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Sprintf("failed to encode response: %v", err)
		}
		return string(data)
	}

	var b strings.Builder
	if response.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", response.Title)
	}

	if transcriptOnly {
		if len(response.Segments) > 0 {
			b.WriteString(youtube.FormatSegments(response.Segments))
		} else {
			b.WriteString(response.Text)
		}
		return b.String()
	}

	if response.Sentiment == nil {
		b.WriteString("No sentiment summary available")
		if response.Warning != "" {
			fmt.Fprintf(&b, ": %s", response.Warning)
		}
		return b.String()
	}

	quotes := response.Sentiment.TopQuotes
	divider := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "%s\nTOP %d %s QUOTES\n%s\n\n", divider, len(quotes), strings.ToUpper(string(response.Sentiment.Kind)), divider)
	for _, quote := range quotes {
		fmt.Fprintf(&b, "%d. %q (Score: %.3f)\n\n", quote.Rank, quote.Text, quote.Score)
	}
	if response.Warning != "" {
		fmt.Fprintf(&b, "Warning: %s\n", response.Warning)
	}

	return b.String()
}
