// cmd/replenish/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/magazyn-app/backend-go/internal/cache"
	"github.com/magazyn-app/backend-go/internal/demand"
	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/magazyn-app/backend-go/internal/reconcile"
	"github.com/magazyn-app/backend-go/internal/repository"
	"github.com/magazyn-app/backend-go/internal/repository/memory"
	"github.com/magazyn-app/backend-go/internal/repository/postgres"
	"github.com/magazyn-app/backend-go/internal/service"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func openRepos(c *cli.Context) (repository.StockRepository, repository.SalesRepository, func(), error) {
	if c.Bool("dry-run") {
		store := memory.NewStore()
		return store, store, func() {}, nil
	}

	url := c.String("db-url")
	if url == "" {
		return nil, nil, nil, fmt.Errorf("db-url is required unless --dry-run is set")
	}

	db, err := postgres.Open("pgx", url)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return postgres.NewStockRepository(db), postgres.NewSalesRepository(db), func() { db.Close() }, nil
}

func ingestAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: replenish ingest <file.csv> [more files...]")
	}

	period, ok := domain.ParsePeriodType(c.String("period"))
	if !ok {
		return fmt.Errorf("unknown period type %q (use 30d or month)", c.String("period"))
	}

	stockRepo, salesRepo, closeFn, err := openRepos(c)
	if err != nil {
		return err
	}
	defer closeFn()

	uploads := service.NewUploadService(reconcile.NewReconciler(stockRepo, salesRepo), nil, cache.NewNoopReportCache())

	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		outcome, err := uploads.ProcessUpload(c.Context, path, data, period)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Printf("%s: kind=%s processed=%d skipped=%d\n", path, outcome.Kind, outcome.Result.Processed, outcome.Result.Skipped)
		if outcome.Warning != "" {
			fmt.Printf("  warning: %s\n", outcome.Warning)
		}
	}

	return nil
}

func reportAction(c *cli.Context) error {
	stockRepo, salesRepo, closeFn, err := openRepos(c)
	if err != nil {
		return err
	}
	defer closeFn()

	reports := service.NewReportService(stockRepo, demand.NewAggregator(salesRepo), cache.NewNoopReportCache())
	rows, err := reports.BuildReport(c.Context, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"sku", "category", "name", "on_hand", "supplier", "order_30d", "order_3m", "order_12m"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.SKU,
			row.Category,
			row.Name,
			strconv.Itoa(row.OnHand),
			row.Supplier,
			strconv.Itoa(row.Order30D),
			strconv.Itoa(row.Order3M),
			strconv.Itoa(row.Order12M),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "replenish",
		Usage: "Ingest warehouse CSV exports and print replenishment reports",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest one or more CSV files (stock or sales, detected from headers)",
				Action: ingestAction,
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "period",
						Usage: "Period type for sales files: 30d or month",
						Value: "month",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Validate and reconcile in memory without touching the database",
					},
				},
			},
			{
				Name:   "report",
				Usage:  "Print the replenishment report as CSV",
				Action: reportAction,
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write the report to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:   "dry-run",
						Hidden: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
