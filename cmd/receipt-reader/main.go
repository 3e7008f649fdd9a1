package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/receipt-reader/internal/parsing"
	"github.com/zombor/receipt-reader/internal/receipt"
	"github.com/zombor/receipt-reader/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-reader")
	var (
		receiptsPath  = fs.StringLong("receipts", "./receipts", "Directory holding receipt images")
		extension     = fs.StringLong("ext", receipt.DefaultExtension, "Image file extension to scan")
		cacheType     = fs.StringLong("cache", "json", "Cache type: 'json' or 'bolt'")
		cachePath     = fs.StringLong("cache-path", "", "Cache file path (default result.json for json, receipts.db for bolt)")
		jsonOut       = fs.StringLong("json-out", "result.json", "JSON output file")
		csvOut        = fs.StringLong("csv-out", "result.csv", "CSV output file")
		scannerType   = fs.StringLong("scanner", "tesseract", "Scanner type: 'tesseract', 'gemini' or 'ollama'")
		tesseractPath = fs.StringLong("tesseract-path", "tesseract", "Tesseract binary")
		tesseractLang = fs.StringLong("tesseract-lang", "eng+chi_sim", "Tesseract languages")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl)")
		debug         = fs.BoolLong("debug", "Log every recognized text fragment")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_READER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Initialize cache
	slog.Info("Initializing cache...", "type", *cacheType)
	var cache receipt.Cache
	var err error
	switch *cacheType {
	case "json":
		if *cachePath == "" {
			*cachePath = "result.json"
		}
		cache, err = receipt.NewJSONCache(*cachePath)
	case "bolt":
		if *cachePath == "" {
			*cachePath = "receipts.db"
		}
		cache, err = receipt.NewBoltCache(*cachePath)
	default:
		slog.Error("Invalid cache type", "type", *cacheType, "valid", "json or bolt")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	scanned, err := cache.All()
	if err != nil {
		slog.Error("Failed to read cache", "path", *cachePath, "error", err)
		os.Exit(1)
	}
	slog.Info("Scanned receipts", "count", len(scanned))
	for _, r := range scanned {
		slog.Debug("Scanned receipt", "name", r.BaseName())
	}

	// Initialize scanner based on type; the model is loaded once for the whole batch
	var scanner scanning.Scanner
	switch *scannerType {
	case "tesseract":
		slog.Info("Initializing Tesseract scanner...", "binary", *tesseractPath, "lang", *tesseractLang)
		scanner, err = scanning.NewTesseract(*tesseractPath, *tesseractLang)
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		scanner, err = scanning.NewGemini(apiKey, *geminiModel)
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		scanner, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "tesseract, gemini or ollama")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize scanner", "type", *scannerType, "error", err)
		os.Exit(1)
	}
	defer scanner.Close()

	// Initialize storage
	store, err := receipt.NewLocalStorage(*receiptsPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// The JSON cache rewrite already produces the JSON output when both share a file
	var sinks []receipt.Sink
	if *jsonOut != "" && !(*cacheType == "json" && samePath(*jsonOut, *cachePath)) {
		sinks = append(sinks, receipt.NewJSONSink(*jsonOut))
	}
	if *csvOut != "" {
		sinks = append(sinks, receipt.NewCSVSink(*csvOut))
	}

	processor := receipt.NewProcessorWithExtension(*extension, cache, scanner, store, parsing.NewParser(), sinks...)
	summary, err := processor.Run()
	if err != nil {
		slog.Error("Batch failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Batch finished",
		"listed", summary.Listed,
		"skipped", summary.Skipped,
		"processed", summary.Processed,
		"total", summary.Total,
	)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
