package main

import (
	"context"
	"fmt"

	"github.com/kapu/senate-directory-go/internal/app"
	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/spf13/cobra"
)

var listFilter = domain.DefaultFilterState()

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the directory list for a filter state",
	Args:  cobra.NoArgs,
	RunE: withSnapshot(func(cmd *cobra.Command, c *app.Container, snap *directory.Snapshot) error {
		out, err := c.Formatter.FormatList(directory.View(snap, listFilter))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}),
}

var partiesCmd = &cobra.Command{
	Use:   "parties",
	Short: "Print the party affiliation bar",
	Args:  cobra.NoArgs,
	RunE: withSnapshot(func(cmd *cobra.Command, c *app.Container, snap *directory.Snapshot) error {
		fmt.Fprintln(cmd.OutOrStdout(), c.Formatter.FormatParties(snap.Parties))
		return nil
	}),
}

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Print the leadership list",
	Args:  cobra.NoArgs,
	RunE: withSnapshot(func(cmd *cobra.Command, c *app.Container, snap *directory.Snapshot) error {
		out, err := c.Formatter.FormatLeaders(snap.Leaders)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}),
}

func init() {
	flags := listCmd.Flags()
	flags.StringVar(&listFilter.Party, "party", domain.ShowAll, "party facet value")
	flags.StringVar(&listFilter.State, "state", domain.ShowAll, "state facet value")
	flags.StringVar(&listFilter.Rank, "rank", domain.ShowAll, "rank facet value")
	flags.StringVar(&listFilter.Search, "search", "", "case-insensitive text search")
}

type snapshotRunner func(cmd *cobra.Command, c *app.Container, snap *directory.Snapshot) error

// withSnapshot loads the dataset once and hands the snapshot to run.
func withSnapshot(run snapshotRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		level := "error"
		if verbose {
			level = ""
		}
		c, logger, err := setup(level)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), c.Config.Dataset.Timeout+constants.DatasetConfig.FetchTimeout)
		defer cancel()

		snap, err := c.Store.Load(ctx)
		if err != nil {
			return fmt.Errorf("data unavailable: %w", err)
		}
		return run(cmd, c, snap)
	}
}
