package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/erp/bizid/internal/application/registration"
	domain "github.com/erp/bizid/internal/domain/registration"
	"github.com/erp/bizid/internal/infrastructure/logger"
	"github.com/erp/bizid/internal/infrastructure/random"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	formatPlain   = "plain"
	formatDisplay = "display"
	formatJSON    = "json"
)

type options struct {
	Kind     string `validate:"oneof=acn abn pair"`
	Count    int    `validate:"min=1"`
	ACN      string `validate:"omitempty,numeric"`
	Seed     uint64
	Format   string `validate:"oneof=plain display json"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr so stdout carries only identifiers
	log, err := logger.New(&logger.Config{
		Level:      opts.LogLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), opts, log, os.Stdout); err != nil {
		log.Error("Generation failed", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
	_ = logger.Sync(log)
}

func parseFlags(args []string, errOut io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("bizgen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { printUsage(errOut) }

	fs.StringVar(&opts.Kind, "kind", "abn", "Identifier kind: acn, abn, pair")
	fs.IntVar(&opts.Count, "count", 1, "Number of identifiers to generate")
	fs.StringVar(&opts.ACN, "acn", "", "Derive a single ABN from this ACN instead of generating")
	fs.Uint64Var(&opts.Seed, "seed", 0, "Seed for reproducible output (0 = random)")
	fs.StringVar(&opts.Format, "format", formatPlain, "Output format: plain, display, json")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := validator.New().Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid -%s value %q", flagNames[fe.Field()], fmt.Sprint(fe.Value()))
		}
		return nil, err
	}
	if opts.ACN != "" && opts.Kind != "abn" {
		return nil, fmt.Errorf("-acn can only be used with -kind abn")
	}
	if opts.ACN != "" && opts.Count != 1 {
		return nil, fmt.Errorf("-acn derives a single ABN and cannot be used with -count %d", opts.Count)
	}

	return opts, nil
}

var flagNames = map[string]string{
	"Kind":     "kind",
	"Count":    "count",
	"ACN":      "acn",
	"Format":   "format",
	"LogLevel": "log-level",
}

func run(ctx context.Context, opts *options, log *zap.Logger, out io.Writer) error {
	var rng *random.Source
	if opts.Seed != 0 {
		rng = random.New(opts.Seed)
	} else {
		rng = random.NewFromEntropy()
	}
	log.Debug("Random source ready", zap.Uint64("seed", rng.Seed()))

	service := registration.NewIdentifierService(
		domain.NewGenerator(rng),
		registration.DefaultServiceConfig(),
		log,
	)

	if opts.ACN != "" {
		value, err := strconv.ParseInt(opts.ACN, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ACN %q: %w", opts.ACN, err)
		}
		abn, err := service.DeriveABN(ctx, value)
		if err != nil {
			return err
		}
		return write(out, opts.Format, *abn, []string{abn.Digits}, []string{abn.Display})
	}

	switch opts.Kind {
	case "acn":
		acns, err := service.GenerateACNs(ctx, opts.Count)
		if err != nil {
			return err
		}
		plain := make([]string, len(acns))
		display := make([]string, len(acns))
		for i, a := range acns {
			plain[i], display[i] = a.Digits, a.Display
		}
		return write(out, opts.Format, acns, plain, display)

	case "pair":
		pairs, err := service.GeneratePairs(ctx, opts.Count)
		if err != nil {
			return err
		}
		plain := make([]string, len(pairs))
		display := make([]string, len(pairs))
		for i, p := range pairs {
			plain[i] = p.ABN.Digits + "\t" + p.ACN.Digits
			display[i] = p.ABN.Display + "\t" + p.ACN.Display
		}
		return write(out, opts.Format, pairs, plain, display)

	default:
		abns, err := service.GenerateABNs(ctx, opts.Count)
		if err != nil {
			return err
		}
		plain := make([]string, len(abns))
		display := make([]string, len(abns))
		for i, b := range abns {
			plain[i], display[i] = b.Digits, b.Display
		}
		return write(out, opts.Format, abns, plain, display)
	}
}

// write renders one line per identifier, or the response values as indented JSON
func write(out io.Writer, format string, data any, plain, display []string) error {
	lines := plain
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatDisplay:
		lines = display
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Australian Company/Business Number Generator

Usage:
  bizgen [flags]

Flags:
  -kind string          Identifier kind: acn, abn, pair (default: abn)
  -count int            Number of identifiers, 1-1000 (default: 1)
  -acn string           Derive a single ABN from this ACN (kind abn, count 1)
  -seed uint            Seed for reproducible output (default: random)
  -format string        Output format: plain, display, json (default: plain)
  -log-level string     Log level: debug, info, warn, error (default: warn)

Examples:
  # Ten ABNs with the conventional spacing
  bizgen -count 10 -format display

  # ABN for a known ACN
  bizgen -acn 004085616

  # Reproducible ABN/ACN pairs as JSON
  bizgen -kind pair -count 3 -seed 42 -format json
`)
}
