package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/grocery"
	"stockroom/internal/domain/warehouse"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed the warehouse and run the walkthrough of success and failure paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.manager.RunDemo(cmd.Context())
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list [electronics|groceries]",
		Short:     "Print every item, optionally for one category",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{warehouse.CategoryElectronics, warehouse.CategoryGroceries},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.manager.Seed(ctx); err != nil {
				return err
			}

			stocks := a.manager.Stocks()
			if len(args) == 1 {
				stock, err := a.manager.Stock(args[0])
				if err != nil {
					return err
				}
				stocks = []domain.Stock{stock}
			}

			out := cmd.OutOrStdout()
			for _, stock := range stocks {
				fmt.Fprintf(out, "--- %s (%d) ---\n", stock.Category(), stock.Count())
				if err := a.manager.PrintAll(ctx, stock); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <electronics|groceries> <expression>",
		Short: "List items matching a CEL expression",
		Long: `List items matching a CEL expression.

The expression sees the item attributes as "item" and the current time as "now".
Shared attributes: id, name, quantity, unit_price.
Electronics add brand and warranty_months; groceries add expiry.

Examples:
  stockroom find electronics 'item.quantity < 15'
  stockroom find electronics 'item.brand == "Dell" && item.warranty_months >= 24'
  stockroom find groceries 'item.expiry < now + duration("48h")'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.manager.Seed(ctx); err != nil {
				return err
			}

			stock, err := a.manager.Stock(args[0])
			if err != nil {
				return err
			}

			items, err := a.manager.Find(ctx, stock, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintln(out, it.String())
			}
			fmt.Fprintf(out, "%d matching %s(s)\n", len(items), stock.Category())
			return nil
		},
	}
}

func newValueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "value",
		Short: "Print stock valuation per category and in total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.manager.Seed(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := types.Zero()
			for _, stock := range a.manager.Stocks() {
				value, err := a.manager.StockValue(ctx, stock)
				if err != nil {
					return err
				}
				total = total.Add(value)
				fmt.Fprintf(out, "%-16s %12s\n", stock.Category(), types.FormatMoney(value))
			}
			fmt.Fprintf(out, "%-16s %12s\n", "total", types.FormatMoney(total))
			return nil
		},
	}
}

func newExpiringCmd(a *app) *cobra.Command {
	var within time.Duration

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List groceries expiring within a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.manager.Seed(ctx); err != nil {
				return err
			}

			window := a.cfg.ExpiryWindow
			if cmd.Flags().Changed("within") {
				window = within
			}

			items, err := a.manager.ExpiringWithin(ctx, window)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			now := a.manager.Now()
			for _, it := range items {
				fmt.Fprintf(out, "%s (%s)\n", it.String(), expiryNote(it, now))
			}
			fmt.Fprintf(out, "%d item(s) expiring within %s\n", len(items), window)
			return nil
		},
	}

	cmd.Flags().DurationVar(&within, "within", 0, "window to look ahead (default STOCKROOM_EXPIRY_WINDOW)")
	return cmd
}

func expiryNote(it grocery.Item, now time.Time) string {
	if it.IsExpired(now) {
		return "expired"
	}
	return "in " + it.ExpiryDate.Sub(now).Round(time.Hour).String()
}
