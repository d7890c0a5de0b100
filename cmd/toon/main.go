// toon - token-efficient data converter CLI
//
// Usage:
//
//	toon encode [flags] [file]   Encode JSON/YAML/CSV input as TOON
//	toon version                 Print version info
//
// Flags for encode:
//
//	--format json|yaml|csv   Input format (default json)
//	--delimiter S            Cell delimiter (default ,)
//	--indent N               Spaces per nesting level (default 2)
//	--fold                   Enable key folding
//	--fallback MODE          none|json|compact on encode failure
//	--translate LANG         Translate output (name or BCP 47 code)
//	--redis-cache            Use Redis-backed translation cache (env config)
//	--count                  Print estimated token count
//	--out FILE               Write output to FILE instead of stdout
//	--gzip                   Gzip-compress the --out file
//	--watch                  Re-encode whenever the input file changes
//	--verbose                Log translation activity
//
// If no file is given, reads from stdin (--watch requires a file).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/tokeneff/toon/toon"
	"github.com/tokeneff/toon/translate"
)

const version = "0.2.0"

type cliConfig struct {
	format     string
	delimiter  string
	indent     int
	fold       bool
	fallback   string
	translate  string
	redisCache bool
	count      bool
	out        string
	gzipOut    bool
	watch      bool
	verbose    bool
	file       string
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("toon %s\n", version)
	case "encode":
		cfg, err := parseFlags(os.Args[2:])
		if err != nil {
			fatal("%v", err)
		}
		if err := runEncode(cfg); err != nil {
			fatal("%v", err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "toon: unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{
		format:    "json",
		delimiter: ",",
		indent:    2,
		fallback:  "none",
	}

	needsValue := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("toon: %s requires a value", name)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			cfg.format = v
			i++
		case "--delimiter":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			cfg.delimiter = v
			i++
		case "--indent":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, fmt.Errorf("toon: bad --indent %q", v)
			}
			cfg.indent = n
			i++
		case "--fold":
			cfg.fold = true
		case "--fallback":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			cfg.fallback = v
			i++
		case "--translate":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			cfg.translate = v
			i++
		case "--redis-cache":
			cfg.redisCache = true
		case "--count":
			cfg.count = true
		case "--out":
			v, err := needsValue(i, arg)
			if err != nil {
				return cfg, err
			}
			cfg.out = v
			i++
		case "--gzip":
			cfg.gzipOut = true
		case "--watch":
			cfg.watch = true
		case "--verbose":
			cfg.verbose = true
		default:
			if cfg.file != "" {
				return cfg, fmt.Errorf("toon: unexpected argument: %s", arg)
			}
			cfg.file = arg
		}
	}

	return cfg, nil
}

func runEncode(cfg cliConfig) error {
	formatter, err := buildFormatter(cfg)
	if err != nil {
		return err
	}

	if cfg.watch {
		if cfg.file == "" || cfg.file == "-" {
			return fmt.Errorf("toon: --watch requires an input file")
		}
		return watchLoop(cfg, formatter)
	}

	data, err := readInput(cfg.file)
	if err != nil {
		return err
	}
	return encodeOnce(cfg, formatter, data)
}

func buildFormatter(cfg cliConfig) (*toon.Formatter, error) {
	var mode toon.FallbackMode
	switch cfg.fallback {
	case "none":
		mode = toon.FallbackNone
	case "json":
		mode = toon.FallbackJSON
	case "compact":
		mode = toon.FallbackCompact
	default:
		return nil, fmt.Errorf("toon: unknown fallback mode %q", cfg.fallback)
	}

	f := toon.NewFormatter()
	f.Options.Delimiter = cfg.delimiter
	f.Options.Indent = cfg.indent
	f.Options.KeyFolding = cfg.fold
	f.Options.Fallback = mode
	f.Options.TranslateTo = cfg.translate

	if cfg.translate != "" {
		log := zap.NewNop()
		if cfg.verbose {
			l, err := zap.NewProduction()
			if err == nil {
				log = l
			}
		}

		var cache translate.Cache = translate.NewMemoryCache()
		if cfg.redisCache {
			rc, err := translate.NewRedisCacheFromEnv()
			if err != nil {
				return nil, err
			}
			cache = rc
		}

		client := translate.NewGoogleClient(translate.WithLogger(log))
		f.Translator = translate.NewService(client, translate.Options{
			Cache:  cache,
			Logger: log,
		})
	}

	return f, nil
}

func encodeOnce(cfg cliConfig, formatter *toon.Formatter, data []byte) error {
	tree, err := convert(cfg.format, data)
	if err != nil {
		return err
	}

	out, err := formatter.Format(context.Background(), tree)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg, out.Content); err != nil {
		return err
	}
	if cfg.count && out.TokenCount != nil {
		fmt.Fprintf(os.Stderr, "tokens: %d\n", *out.TokenCount)
	}
	return nil
}

func convert(format string, data []byte) (*toon.Value, error) {
	switch format {
	case "json":
		return toon.FromJSON(data)
	case "yaml":
		return toon.FromYAML(data)
	case "csv":
		return toon.FromCSV(data)
	default:
		return nil, fmt.Errorf("toon: unknown input format %q", format)
	}
}

func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

func writeOutput(cfg cliConfig, content string) error {
	if cfg.out == "" {
		fmt.Println(content)
		return nil
	}

	f, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if cfg.gzipOut {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	_, err = io.WriteString(w, content)
	return err
}

// watchLoop re-encodes the input file on every write. Editors often
// replace files via rename, so the path is re-added after such events.
func watchLoop(cfg cliConfig, formatter *toon.Formatter) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("toon: watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(cfg.file); err != nil {
		return fmt.Errorf("toon: watch %s: %w", cfg.file, err)
	}

	run := func() {
		data, err := readInput(cfg.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "toon: %v\n", err)
			return
		}
		if err := encodeOnce(cfg, formatter, data); err != nil {
			fmt.Fprintf(os.Stderr, "toon: %v\n", err)
		}
	}

	run()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				run()
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Best-effort re-add after atomic replace.
				_ = w.Add(cfg.file)
				run()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "toon: watch: %v\n", err)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `toon - token-efficient data converter

Usage:
  toon encode [flags] [file]   Encode JSON/YAML/CSV input as TOON
  toon version                 Print version info

Run 'toon encode' with no file to read from stdin.`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "toon: "+format+"\n", args...)
	os.Exit(1)
}
