package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/qprimes/internal/prime"
	"github.com/spf13/cobra"
)

// maxPrimeQuery caps the values the prime command will sieve up to.
const maxPrimeQuery = 100_000_000

var flagPrimeStats bool

var primeCmd = &cobra.Command{
	Use:   "prime <x>...",
	Short: "Report whether each integer is prime",
	Long: fmt.Sprintf("Report whether each integer is prime. Values up to %d are accepted;\n"+
		"use -- before negative values.", maxPrimeQuery),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]int, 0, len(args))
		for _, a := range args {
			x, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("not an integer: %q", a)
			}
			if x > maxPrimeQuery {
				return fmt.Errorf("%d exceeds the largest supported value %d", x, maxPrimeQuery)
			}
			values = append(values, x)
		}
		if err := checkPrimes(cmd.OutOrStdout(), prime.New(), values, flagPrimeStats); err != nil {
			fail("%v", err)
		}
		return nil
	},
}

// checkPrimes answers every query from one oracle, in the order given.
func checkPrimes(w io.Writer, o *prime.Oracle, values []int, withStats bool) error {
	ew := &lineWriter{w: w}
	for _, x := range values {
		if o.IsPrime(x) {
			ew.printf("%d is prime\n", x)
		} else {
			ew.printf("%d is not prime\n", x)
		}
	}
	if withStats && ew.err == nil {
		data, err := json.MarshalIndent(o.Stats(), "", "  ")
		if err != nil {
			return err
		}
		ew.printf("%s\n", data)
	}
	return ew.err
}

type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...interface{}) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func init() {
	primeCmd.Flags().BoolVar(&flagPrimeStats, "stats", false, "Print oracle statistics after the answers")
}
