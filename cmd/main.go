package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evanjt06/streamindex/internal"
	"github.com/evanjt06/streamindex/store"
	"github.com/evanjt06/streamindex/stream"
)

// item is what the demo stores; Line records which script line last wrote it.
type item struct {
	ID   string
	Line int
}

func itemID(it item) string { return it.ID }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		limit      int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "streamdemo [script]",
		Short: "Replay push/unshift/trim/list operations against an in-memory stream index",
		Long: `Reads one operation per line from the script file (or stdin):

  push <id>...      append ids to the tail, then trim
  unshift <id>...   place ids at the head
  trim              evict ids beyond the limit
  list              print the items in index order

Blank lines and lines starting with # are ignored.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := stream.LoadConfig(configPath)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			if cmd.Flags().Changed("limit") {
				opts = append(opts, stream.WithLimit(limit))
			}

			level := zapcore.InfoLevel
			if verbose {
				level = zapcore.DebugLevel
			}
			logger := internal.NewLogger(cmd.ErrOrStderr(), level)
			defer func() { _ = logger.Sync() }() // flush logs

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return run(in, cmd.OutOrStdout(), logger, opts...)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML or JSON config file")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of ids kept after a push (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log index and store operations")
	return cmd
}

func run(in io.Reader, out io.Writer, logger *zap.SugaredLogger, opts ...stream.Option) error {
	items := store.NewMemory(itemID, store.WithLogger(logger.Named("store")))
	ix := stream.New[string, item](items, itemID, append(opts, stream.WithLogger(logger.Named("index")))...)

	if n, ok := ix.Limit(); ok {
		logger.Infow("Stream index ready", "limit", n)
	} else {
		logger.Infow("Stream index ready", "limit", "unbounded")
	}

	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		batch := make([]item, 0, len(fields)-1)
		for _, id := range fields[1:] {
			batch = append(batch, item{ID: id, Line: line})
		}

		var err error
		switch op := fields[0]; op {
		case "push":
			err = ix.Push(batch...)
		case "unshift":
			err = ix.Unshift(batch...)
		case "trim":
			err = ix.Trim()
		case "list":
			err = printItems(out, ix)
		default:
			err = fmt.Errorf("unknown operation %q", op)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}

func printItems(out io.Writer, ix *stream.Index[string, item]) error {
	all, err := ix.GetAllItems()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(all))
	for _, it := range all {
		ids = append(ids, it.ID)
	}
	_, err = fmt.Fprintln(out, strings.Join(ids, " "))
	return err
}
