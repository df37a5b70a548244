package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	_ "time/tzdata" // locations must resolve on hosts without a zoneinfo database

	"github.com/jxs13/timespan/config"
	"github.com/jxs13/timespan/internal/decompose"
	"github.com/jxs13/timespan/internal/format"
	"github.com/jxs13/timespan/internal/history"
	"github.com/jxsl13/cli-config-boilerplate/cliconfig"
	"github.com/spf13/cobra"
)

func main() {

	err := NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	rootContext := rootContext{
		Context: ctx,
	}

	cmd := &cobra.Command{
		Use:   "timespan",
		Short: "decompose the time between two timestamps into years, months, weeks, days, hours, minutes, seconds and below",
		RunE:  rootContext.RunE,
		Args:  cobra.ExactArgs(0),
		PostRunE: func(cmd *cobra.Command, args []string) error {
			if rootContext.DB != nil {
				rootContext.DB.Close()
			}
			cancel()
			return nil
		},
	}

	// register flags but defer parsing and validation of the final values
	cmd.PreRunE = rootContext.PreRunE(cmd)

	cmd.AddCommand(NewHistoryCmd(ctx))
	cmd.AddCommand(NewCompletionCmd(cmd.Name()))
	return cmd
}

type rootContext struct {
	Context context.Context

	// set in PreRunE
	Config *config.Config
	DB     *sql.DB
}

func (c *rootContext) PreRunE(cmd *cobra.Command) func(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	c.Config = config.New()
	runParser := cliconfig.RegisterFlags(c.Config, true, cmd)
	return func(cmd *cobra.Command, args []string) error {
		err := runParser()
		if err != nil {
			return err
		}

		if !c.Config.HistoryEnabled() {
			return nil
		}

		db, err := openDB(c.Context, c.Config.DSN)
		if err != nil {
			return err
		}
		c.DB = db
		return nil
	}
}

func (c *rootContext) RunE(cmd *cobra.Command, args []string) error {
	entry := history.NewEntry(c.Config.StartTime, c.Config.EndTime, c.Config.Duration)

	err := printEntry(cmd.OutOrStdout(), entry, c.Config.Verify)
	if err != nil {
		return err
	}

	if c.DB == nil {
		return nil
	}

	id, err := history.New(c.DB).Record(c.Context, entry)
	if err != nil {
		return err
	}
	log.Printf("recorded decomposition %d in %s", id, c.Config.DSN)
	return nil
}

func printEntry(w io.Writer, e history.Entry, verify bool) error {
	lines := [][2]string{}
	if !e.Start.IsZero() {
		lines = append(lines,
			[2]string{"start", e.Start.String()},
			[2]string{"end", e.End.String()},
			[2]string{"relative", format.Relative(e.Start, e.End)},
		)
	}

	lines = append(lines,
		[2]string{"duration", format.Nanoseconds(e.Duration)},
		[2]string{"largest", format.Largest(e.Decomposition)},
		[2]string{"precise", format.Precise(e.Decomposition)},
		[2]string{"decomposed", format.Decomposition(e.Decomposition)},
		[2]string{"in days", format.Days(decompose.DecomposeDays(e.Duration))},
	)

	if verify {
		lines = append(lines,
			[2]string{"arithmetic", string(e.Path)},
			[2]string{"reconstructed", format.Reconstruction(e.Decomposition)},
		)
		if e.Path == decompose.PathFloat {
			lines = append(lines, [2]string{"", "float arithmetic may round the smallest units"})
		}
	}

	for _, l := range lines {
		label := l[0]
		if label != "" {
			label += ":"
		}
		_, err := fmt.Fprintf(w, "%-15s %s\n", label, l[1])
		if err != nil {
			return err
		}
	}
	return nil
}
