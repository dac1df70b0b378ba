// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command iitiibench builds a random interval set, runs a batch of random
// overlap queries against both the learned index and the naive linear-scan
// reference, and reports timing and average query cost. It also fails loudly
// if the two ever disagree, since that would mean a bug in the
// interpolation-guided climb, not merely slower-than-hoped performance.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/biodatageeks/iitii"
	"github.com/biodatageeks/iitii/internal/naive"
)

type logLevelFlag struct {
	logrus.Level
}

func (lvl *logLevelFlag) Type() string { return "loglevel" }
func (lvl *logLevelFlag) Set(str string) error {
	var err error
	lvl.Level, err = logrus.ParseLevel(str)
	return err
}

var _ pflag.Value = (*logLevelFlag)(nil)

type interval struct {
	Beg, End int
}

func begOf(i interval) int { return i.Beg }
func endOf(i interval) int { return i.End }

func main() {
	logLevel := logLevelFlag{Level: logrus.InfoLevel}

	var numItems, numQueries, domains, span, maxWidth int
	var seed int64

	cmd := &cobra.Command{
		Use:   "iitiibench",
		Short: "Benchmark the learned interval index against a linear-scan reference",

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetLevel(logLevel.Level)
			return run(logger, numItems, numQueries, domains, span, maxWidth, seed)
		},
	}

	cmd.Flags().Var(&logLevel, "verbosity", "log verbosity (panic|fatal|error|warn|info|debug|trace)")
	cmd.Flags().IntVar(&numItems, "items", 100_000, "number of random intervals to index")
	cmd.Flags().IntVar(&numQueries, "queries", 10_000, "number of random overlap queries to run")
	cmd.Flags().IntVar(&domains, "domains", 256, "number of interpolation domains to train")
	cmd.Flags().IntVar(&span, "span", 10_000_000, "width of the begin-position universe")
	cmd.Flags().IntVar(&maxWidth, "max-width", 1000, "maximum interval width")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed, for reproducible runs")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "iitiibench: error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *logrus.Logger, numItems, numQueries, domains, span, maxWidth int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	items := make([]interval, numItems)
	for i := range items {
		beg := rng.Intn(span)
		items[i] = interval{Beg: beg, End: beg + 1 + rng.Intn(maxWidth)}
	}

	logger.WithFields(logrus.Fields{
		"items":   numItems,
		"domains": domains,
		"span":    span,
	}).Info("building indexes")

	b := iitii.NewBuilder[int, interval](begOf, endOf)
	for _, it := range items {
		b.Add(it)
	}

	buildStart := time.Now()
	idx := b.BuildIitii(domains)
	buildElapsed := time.Since(buildStart)

	gold := naive.New[int, interval](items, begOf, endOf)

	logger.WithField("elapsed", buildElapsed).Info("built learned index")

	var totalCost int
	var mismatches int
	queryStart := time.Now()
	for i := 0; i < numQueries; i++ {
		qbeg := rng.Intn(span)
		qend := qbeg + 1 + rng.Intn(maxWidth)

		got, cost := idx.Overlap(qbeg, qend)
		totalCost += cost

		want := gold.Overlap(qbeg, qend)
		if !sameItems(got, want) {
			mismatches++
			logger.WithFields(logrus.Fields{
				"qbeg": qbeg,
				"qend": qend,
				"got":  len(got),
				"want": len(want),
			}).Error("learned index disagrees with the linear-scan reference")
		}
	}
	queryElapsed := time.Since(queryStart)

	logger.WithFields(logrus.Fields{
		"queries":         numQueries,
		"elapsed":         queryElapsed,
		"avgCost":         float64(totalCost) / float64(numQueries),
		"avgQueryLatency": queryElapsed / time.Duration(numQueries),
		"totalClimbCost":  idx.TotalClimbCost(),
		"mismatches":      mismatches,
	}).Info("query batch complete")

	if mismatches > 0 {
		return fmt.Errorf("learned index disagreed with the reference on %d/%d queries", mismatches, numQueries)
	}
	return nil
}

func sameItems(a, b []interval) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := append([]interval(nil), a...), append([]interval(nil), b...)
	less := func(s []interval) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Beg != s[j].Beg {
				return s[i].Beg < s[j].Beg
			}
			return s[i].End < s[j].End
		}
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
