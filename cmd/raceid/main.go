package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/afs"
	"github.com/viant/raceid"
	"github.com/viant/raceid/service/watch"
	"github.com/viant/raceid/tracing"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("raceid: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	defaults := raceid.DefaultConfig()
	flags := flag.NewFlagSet("raceid", flag.ContinueOnError)
	var (
		cfgPath   = flags.String("config", "", "path to YAML or JSON config")
		input     = flags.String("input", defaults.Input, "input document URL or path")
		output    = flags.String("output", defaults.Output, "output document URL or path")
		key       = flags.String("key", defaults.Key, "top-level key holding the race records")
		field     = flags.String("field", defaults.IDField, "record field receiving the identifier")
		indent    = flags.Int("indent", defaults.Indent, "output indentation in spaces, at least 1")
		count     = flags.String("count", string(defaults.Count), "reported count: records or keys")
		preview   = flags.Bool("preview", false, "print a diff instead of writing the output")
		watchMode = flags.Bool("watch", false, "re-run whenever the input changes")
		trace     = flags.String("trace", "", "write spans to this file, or 'stdout'")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	fs := afs.New()
	cfg := defaults
	if *cfgPath != "" {
		loaded, err := raceid.LoadConfig(ctx, fs, *cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "key":
			cfg.Key = *key
		case "field":
			cfg.IDField = *field
		case "indent":
			cfg.Indent = *indent
		case "count":
			cfg.Count = raceid.CountMode(*count)
		case "preview":
			cfg.Preview = *preview
		}
	})

	options := []raceid.Option{raceid.WithConfig(cfg), raceid.WithFs(fs), raceid.WithWriter(stdout)}
	switch *trace {
	case "":
	case "stdout":
		options = append(options, raceid.WithTracing("raceid", Version, ""))
	default:
		options = append(options, raceid.WithTracing("raceid", Version, *trace))
	}
	srv := raceid.New(options...)
	if *trace != "" {
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				log.Printf("trace shutdown: %v", err)
			}
		}()
	}

	transform := func(ctx context.Context) error {
		result, err := srv.Transform(ctx)
		if err != nil {
			return err
		}
		if result.Preview && result.Diff != "" {
			fmt.Fprint(stdout, result.Diff)
		}
		if *watchMode {
			log.Printf("processed %s in %s", result.Input, result.Elapsed)
		}
		return nil
	}

	if !*watchMode {
		return transform(ctx)
	}
	watcher, err := watch.New(cfg.Input, transform, watch.WithRunOnStart())
	if err != nil {
		return err
	}
	log.Printf("raceid %s watching %s", Version, watcher.Path())
	return watcher.Run(ctx)
}
