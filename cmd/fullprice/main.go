// fullprice - full price augmentation for retail listing snapshots
//
// Usage:
//
//	fullprice process --page page.html [--out out.html]
//	fullprice watch --page page.html --out out.html
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"fullprice/internal/currency"
	"fullprice/internal/observe"
	"fullprice/internal/page"
	"fullprice/internal/process"
	"fullprice/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "fullprice",
		Usage:   "Recompute and display the full price (base + shipping + tax) for every item on a listing or product page",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"FULLPRICE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "currency-selector",
				Value:   page.DefaultSelectors().Currency,
				Usage:   "Selector of the element holding the displayed currency code",
				EnvVars: []string{"FULLPRICE_CURRENCY_SELECTOR"},
			},
			&cli.StringFlag{
				Name:    "list-selector",
				Value:   page.DefaultSelectors().ListContainer,
				Usage:   "Selector of the listing container",
				EnvVars: []string{"FULLPRICE_LIST_SELECTOR"},
			},
			&cli.StringFlag{
				Name:    "item-selector",
				Value:   page.DefaultSelectors().ListItem,
				Usage:   "Selector of one item card",
				EnvVars: []string{"FULLPRICE_ITEM_SELECTOR"},
			},
			&cli.StringFlag{
				Name:    "item-price-selector",
				Value:   page.DefaultSelectors().ItemPrice,
				Usage:   "Selector of the price text inside an item card",
				EnvVars: []string{"FULLPRICE_ITEM_PRICE_SELECTOR"},
			},
			&cli.StringFlag{
				Name:    "item-shipping-selector",
				Value:   page.DefaultSelectors().ItemShipping,
				Usage:   "Selector of the shipping text inside an item card",
				EnvVars: []string{"FULLPRICE_ITEM_SHIPPING_SELECTOR"},
			},
			&cli.IntFlag{
				Name:    "page-size",
				Value:   page.FullPageSize,
				Usage:   "Item count of a fully loaded listing page (sort trigger)",
				EnvVars: []string{"FULLPRICE_PAGE_SIZE"},
			},
		},

		Commands: []*cli.Command{
			processCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func selectorsFromFlags(c *cli.Context) page.Selectors {
	sel := page.DefaultSelectors()
	sel.Currency = c.String("currency-selector")
	sel.ListContainer = c.String("list-selector")
	sel.ListItem = c.String("item-selector")
	sel.ItemPrice = c.String("item-price-selector")
	sel.ItemShipping = c.String("item-shipping-selector")
	return sel
}

// =============================================================================
// PROCESS COMMAND
// =============================================================================

func processCommand() *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: "Run the pipeline once over a page snapshot and write the augmented page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "page",
				Aliases:  []string{"p"},
				Usage:    "Path to the page HTML snapshot",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path for the augmented page (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "currency",
				Usage: "Override the currency code instead of reading it from the page",
			},
		},
		Action: runProcess,
	}
}

func runProcess(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"))

	doc, err := page.ParseFile(c.String("page"), selectorsFromFlags(c))
	if err != nil {
		return err
	}

	pipe := process.New(logger).WithPageSize(c.Int("page-size"))
	sess := process.NewSession()

	cur := c.String("currency")
	if cur == "" {
		cur = currency.Resolve(doc)
	}
	sess.CurrencyResolved = cur != ""
	pipe.ExecuteWith(doc, sess, cur, true)

	logger.Info("page processed",
		"session", sess.ID,
		"currency", cur,
		"product_page", doc.IsProductPage(),
		"sorted", sess.Sorted,
	)
	return writeDocument(doc, c.String("out"))
}

// =============================================================================
// WATCH COMMAND
// =============================================================================

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Keep the augmented page converged while the snapshot file keeps changing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "page",
				Aliases:  []string{"p"},
				Usage:    "Path to the page HTML snapshot",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Output path for the augmented page",
				Required: true,
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"))

	pagePath := c.String("page")
	outPath := c.String("out")
	if outPath == pagePath {
		return fmt.Errorf("out must differ from page: writing the watched file would loop forever")
	}
	sel := selectorsFromFlags(c)

	doc, err := page.ParseFile(pagePath, sel)
	if err != nil {
		return err
	}

	pipe := process.New(logger).WithPageSize(c.Int("page-size"))
	coord := observe.NewCoordinator(doc, pipe, logger)
	coord.WithReload(func() (*page.Document, error) {
		return page.ParseFile(pagePath, sel)
	})
	coord.WithOnSettle(func(d *page.Document) {
		if err := writeDocument(d, outPath); err != nil {
			logger.Warn("could not write augmented page", "path", outPath, "error", err)
		}
	})

	fw := observe.NewFileWatcher(pagePath, observe.RegionDocument, logger)
	coord.AddWatcher(fw)
	defer fw.Close()

	if err := coord.Bootstrap(); err != nil {
		return err
	}
	// First pass over the already-present snapshot; later passes arrive as
	// file mutations.
	coord.Handle(observe.Mutation{Region: observe.RegionDocument})

	logger.Info("watching page snapshot",
		"session", coord.Session().ID, "page", pagePath, "out", outPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := coord.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func writeDocument(doc *page.Document, path string) error {
	if path == "" {
		return doc.Render(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return doc.Render(f)
}
