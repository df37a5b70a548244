package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jxs13/timespan/config"
	"github.com/jxs13/timespan/internal/format"
	"github.com/jxs13/timespan/internal/history"
	"github.com/jxsl13/cli-config-boilerplate/cliconfig"
	"github.com/spf13/cobra"
)

func NewHistoryCmd(ctx context.Context) *cobra.Command {
	historyContext := historyContext{
		Context: ctx,
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "list or clear previously recorded decompositions",
		RunE:  historyContext.RunE,
		Args:  cobra.ExactArgs(0),
		PostRunE: func(cmd *cobra.Command, args []string) error {
			if historyContext.DB != nil {
				historyContext.DB.Close()
			}
			return nil
		},
	}

	cmd.PreRunE = historyContext.PreRunE(cmd)
	return cmd
}

type historyContext struct {
	Context context.Context

	// set in PreRunE
	Config *config.HistoryConfig
	DB     *sql.DB
}

func (c *historyContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	c.Config = config.NewHistory()
	runParser := cliconfig.RegisterFlags(c.Config, true, cmd)
	return func(cmd *cobra.Command, args []string) error {
		err := runParser()
		if err != nil {
			return err
		}

		db, err := openDB(c.Context, c.Config.DSN)
		if err != nil {
			return err
		}
		c.DB = db
		return nil
	}
}

func (c *historyContext) RunE(cmd *cobra.Command, args []string) error {
	store := history.New(c.DB)

	if c.Config.Clear {
		err := store.Clear(c.Context)
		if err != nil {
			return err
		}
		log.Printf("cleared history in %s", c.Config.DSN)
		return nil
	}

	entries, err := store.List(c.Context, c.Config.Limit)
	if err != nil {
		return err
	}
	return printHistory(cmd.OutOrStdout(), entries)
}

func printHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no recorded decompositions")
		return err
	}

	for _, e := range entries {
		span := format.Nanoseconds(e.Duration)
		if !e.Start.IsZero() {
			span = fmt.Sprintf("%s -> %s", e.Start.Format(time.RFC3339Nano), e.End.Format(time.RFC3339Nano))
		}

		_, err := fmt.Fprintf(w, "#%d %s %s\n    %s\n",
			e.ID,
			e.CreatedAt.Format(time.DateTime),
			span,
			format.Decomposition(e.Decomposition),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
