// Package options holds the flags shared by every fdprop subcommand.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gitrdm/fdprop/pkg/fd"
	"github.com/gitrdm/fdprop/pkg/search"
)

// Global is bound to the persistent flags of the root command.
type Global struct {
	Verbose   bool
	Heuristic string
	Timeout   time.Duration
	Limit     int

	logger *logrus.Logger
}

// AddFlags registers the shared flags on fs.
func (g *Global) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "log propagation and search events")
	fs.StringVar(&g.Heuristic, "heuristic", search.HeuristicDom.String(),
		"variable selection: input, dom, domdeg or deg")
	fs.DurationVar(&g.Timeout, "timeout", 0, "stop the search after this long (0 means no limit)")
	fs.IntVar(&g.Limit, "limit", 0, "stop after this many solutions (0 means all)")
}

// Logger returns the logger of the current invocation.
func (g *Global) Logger() *logrus.Logger {
	if g.logger == nil {
		g.logger = logrus.New()
		g.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		g.logger.SetLevel(logrus.WarnLevel)
		if g.Verbose {
			g.logger.SetLevel(logrus.DebugLevel)
		}
	}
	return g.logger
}

// StoreOptions wires the logger into new stores.
func (g *Global) StoreOptions() []fd.StoreOption {
	return []fd.StoreOption{fd.WithLogger(logrus.NewEntry(g.Logger()).WithField("component", "store"))}
}

// SearchConfig translates the flags into a search configuration.
func (g *Global) SearchConfig() (*search.Config, error) {
	h, ok := search.ParseVariableHeuristic(strings.ToLower(g.Heuristic))
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %q", g.Heuristic)
	}
	if g.Limit < 0 {
		return nil, fmt.Errorf("--limit must not be negative, got %d", g.Limit)
	}
	cfg := search.DefaultConfig()
	cfg.VariableHeuristic = h
	cfg.MaxSolutions = g.Limit
	cfg.TimeBudget = g.Timeout
	cfg.Logger = logrus.NewEntry(g.Logger()).WithField("component", "search")
	return cfg, nil
}
