package main

import (
	"context"
	"encoding/json"

	"fsanano/csmarket/internal/config"
	"fsanano/csmarket/internal/logging"
	"fsanano/csmarket/internal/model"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	loadConfig func() (*config.Config, error)

	markets  []string
	currency string
	maxAge   string
	start    string
	end      string
}

type call func(ctx context.Context, c *csmarket.Client) (any, error)

func newRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	rootCmd := &cobra.Command{
		Use:           "csmarket",
		Short:         "Query the CSMarketAPI market-data API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	listingsLatest := a.itemCommand("latest", "Current listings of an item", a.listingsLatest)
	listingsHistory := a.itemCommand("history", "Listing snapshots of an item over time", a.listingsHistory)
	salesLatest := a.itemCommand("latest", "Latest daily sales of an item", a.salesLatest)
	salesHistory := a.itemCommand("history", "Daily sales of an item over a date range", a.salesHistory)

	for _, c := range []*cobra.Command{listingsLatest, listingsHistory, salesLatest, salesHistory} {
		a.aggregateFlags(c)
	}
	for _, c := range []*cobra.Command{listingsLatest, listingsHistory} {
		c.Flags().StringVar(&a.maxAge, "max-age", "", "maximum age of listing data, passed to the API as is")
	}
	a.rangeFlags(salesHistory)

	listingsCmd := &cobra.Command{Use: "listings", Short: "Aggregated listings across markets"}
	listingsCmd.AddCommand(listingsLatest, listingsHistory)

	salesCmd := &cobra.Command{Use: "sales", Short: "Aggregated daily sales across markets"}
	salesCmd.AddCommand(salesLatest, salesHistory)

	playersCmd := &cobra.Command{Use: "players", Short: "In-game player counts"}
	playersHistory := a.command("history", "Player counts over time", func(ctx context.Context, c *csmarket.Client) (any, error) {
		return c.GetPlayerCountsHistory(ctx, csmarket.PlayerCountsHistoryOptions{Start: a.start, End: a.end})
	})
	a.rangeFlags(playersHistory)
	playersCmd.AddCommand(
		a.command("latest", "Current player count", func(ctx context.Context, c *csmarket.Client) (any, error) {
			return c.GetPlayerCountsLatest(ctx)
		}),
		playersHistory,
	)

	rootCmd.AddCommand(
		listingsCmd,
		salesCmd,
		playersCmd,
		a.command("items", "Item catalog", func(ctx context.Context, c *csmarket.Client) (any, error) {
			return c.GetItems(ctx)
		}),
		a.command("markets", "Market catalog with fees", func(ctx context.Context, c *csmarket.Client) (any, error) {
			return c.GetMarkets(ctx)
		}),
		a.command("currency-rates", "Conversion rates against USD", func(ctx context.Context, c *csmarket.Client) (any, error) {
			return c.GetCurrencyRates(ctx)
		}),
	)
	return rootCmd
}

func (a *app) aggregateFlags(c *cobra.Command) {
	c.Flags().StringSliceVar(&a.markets, "markets", nil, "markets to aggregate, e.g. STEAMCOMMUNITY,BUFF163 (required)")
	c.Flags().StringVar(&a.currency, "currency", "", "price currency (default USD)")
	c.MarkFlagRequired("markets")
}

func (a *app) rangeFlags(c *cobra.Command) {
	c.Flags().StringVar(&a.start, "start", "", "range start, passed to the API as is")
	c.Flags().StringVar(&a.end, "end", "", "range end, passed to the API as is")
}

func (a *app) command(use, short string, fn call) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, fn)
		},
	}
}

// itemCommand builds a command taking the market hash name as its argument.
func (a *app) itemCommand(use, short string, fn func(ctx context.Context, c *csmarket.Client, name string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <market_hash_name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *csmarket.Client) (any, error) {
				return fn(ctx, c, args[0])
			})
		},
	}
}

func (a *app) run(cmd *cobra.Command, fn call) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	logger.SetOutput(cmd.ErrOrStderr())

	clientCfg := csmarket.Config{
		APIURL:  cfg.CSMarket.APIURL,
		APIKey:  cfg.CSMarket.APIKey,
		Timeout: cfg.CSMarket.Timeout,
	}
	return csmarket.Use(clientCfg, func(c *csmarket.Client) error {
		v, err := fn(cmd.Context(), c)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}, csmarket.WithLogger(logrus.NewEntry(logger)))
}

func (a *app) parsedMarkets() ([]model.Market, error) {
	out := make([]model.Market, 0, len(a.markets))
	for _, s := range a.markets {
		m, err := model.ParseMarket(s)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (a *app) aggregateArgs() ([]model.Market, model.Currency, error) {
	markets, err := a.parsedMarkets()
	if err != nil {
		return nil, "", err
	}
	currency, err := model.ParseCurrency(a.currency)
	if err != nil {
		return nil, "", err
	}
	return markets, currency, nil
}

func (a *app) listingsLatest(ctx context.Context, c *csmarket.Client, name string) (any, error) {
	markets, currency, err := a.aggregateArgs()
	if err != nil {
		return nil, err
	}
	return c.GetListingsLatestAggregated(ctx, name, markets, csmarket.ListingsOptions{Currency: currency, MaxAge: a.maxAge})
}

func (a *app) listingsHistory(ctx context.Context, c *csmarket.Client, name string) (any, error) {
	markets, currency, err := a.aggregateArgs()
	if err != nil {
		return nil, err
	}
	return c.GetListingsHistoryAggregated(ctx, name, markets, csmarket.ListingsOptions{Currency: currency, MaxAge: a.maxAge})
}

func (a *app) salesLatest(ctx context.Context, c *csmarket.Client, name string) (any, error) {
	markets, currency, err := a.aggregateArgs()
	if err != nil {
		return nil, err
	}
	return c.GetSalesLatestAggregated(ctx, name, markets, csmarket.SalesLatestOptions{Currency: currency})
}

func (a *app) salesHistory(ctx context.Context, c *csmarket.Client, name string) (any, error) {
	markets, currency, err := a.aggregateArgs()
	if err != nil {
		return nil, err
	}
	return c.GetSalesHistoryAggregated(ctx, name, markets, csmarket.SalesHistoryOptions{
		Start:    a.start,
		End:      a.end,
		Currency: currency,
	})
}
