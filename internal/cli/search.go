package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/qprimes/internal/cache"
	"github.com/dshills/qprimes/internal/config"
	"github.com/dshills/qprimes/internal/logging"
	"github.com/dshills/qprimes/internal/output"
	"github.com/dshills/qprimes/internal/quadratic"
	"github.com/spf13/cobra"
)

// Search flags
var (
	flagBound       int
	flagFormat      string
	flagOut         string
	flagNoCache     bool
	flagInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search [N]",
	Short: "Search |a|, |b| < N for the longest run of consecutive primes",
	Long: "Search n^2 + a*n + b with |a| < N and |b| < N for the quadratic producing the\n" +
		"most consecutive primes from n = 0. N comes from the argument, --bound, an\n" +
		"interactive prompt (--interactive) or the configured default.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bound, err := resolveBound(args, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		overrides := buildOverrides(cmd)
		if bound > 0 {
			overrides["bound"] = strconv.Itoa(bound)
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}
		if flagNoCache {
			cfg.Cache.Enabled = false
		}
		logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		report, err := runSearch(cfg, logger)
		if err != nil {
			fail("%v", err)
			return nil
		}
		if err := output.WriteReport(report, cfg.Format, flagOut, cmd.OutOrStdout()); err != nil {
			fail("writing output: %v", err)
		}
		return nil
	},
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagBound, "bound", 0, fmt.Sprintf("Coefficient bound N (|a|, |b| < N, N <= %d)", quadratic.MaxBound))
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the result cache")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Prompt for N on stdin")
}

// buildOverrides collects the flags the user actually set. An explicit
// --bound is passed through even when it is zero or negative so that
// validation rejects it.
func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	if cmd.Flags().Changed("bound") {
		m["bound"] = strconv.Itoa(flagBound)
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["logFormat"] = flagLogFormat
	}
	return m
}

// resolveBound returns N from the positional argument or the interactive
// prompt. Zero means neither was given and the configured bound applies.
func resolveBound(args []string, in io.Reader, out io.Writer) (int, error) {
	if len(args) == 1 {
		return parseNatural(args[0])
	}
	if flagInteractive {
		return promptBound(in, out)
	}
	return 0, nil
}

// promptBound asks for a natural number and reads one line from in.
func promptBound(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "Enter a natural number: ")
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("reading bound: %w", err)
		}
		return 0, fmt.Errorf("reading bound: no input")
	}
	return parseNatural(sc.Text())
}

func parseNatural(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("N must be an integer, got %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("N must be a natural number, got %d", n)
	}
	if n > quadratic.MaxBound {
		return 0, fmt.Errorf("N must be at most %d, got %d", quadratic.MaxBound, n)
	}
	return n, nil
}

// runSearch answers from the result cache when possible and otherwise runs
// the search, storing the fresh result.
func runSearch(cfg config.Config, logger *slog.Logger) (*output.Report, error) {
	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		logger.Warn("result cache unavailable", "error", err)
		c, _ = cache.New(false, "", 0)
	}

	if r, ok := c.Get(cfg.Bound); ok {
		logger.Info("result served from cache", "bound", cfg.Bound, "dir", c.Dir())
		return output.NewReport(version, cfg.Bound, r, nil), nil
	}

	s := quadratic.NewSearcher(quadratic.WithLogger(logger))
	r, err := s.Search(cfg.Bound)
	if err != nil {
		return nil, err
	}
	if err := c.Put(cfg.Bound, r); err != nil {
		logger.Warn("storing result in cache failed", "bound", cfg.Bound, "error", err)
	}
	stats := s.LastStats()
	return output.NewReport(version, cfg.Bound, r, &stats), nil
}

func init() {
	addSearchFlags(searchCmd)
}
