// Command monochrome-export dumps the normalized catalog to an xlsx
// spreadsheet, useful for eyeballing what a provider actually returns.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/monochrome/internal/app"
	"github.com/phenrril/monochrome/internal/config"
	"github.com/phenrril/monochrome/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config/config.yaml", "path to config file")
	out := flag.String("out", "catalog.xlsx", "output file")
	provider := flag.String("provider", "", "override catalog provider")
	flag.Parse()

	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}
	if *provider != "" {
		cfg.Catalog.Provider = *provider
	}

	p, err := app.BuildProvider(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("build provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := p.FetchProducts(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Str("provider", p.Name()).Msg("fetch products")
	}

	if err := writeXLSX(*out, products); err != nil {
		zlog.Fatal().Err(err).Msg("write xlsx")
	}
	zlog.Info().Int("products", len(products)).Str("file", *out).Msg("catalog exported")
}

func writeXLSX(path string, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Catalog"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Handle", "Title", "Category", "Price", "Currency", "Image", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, p := range products {
		values := []any{p.ID, p.Handle, p.Title, p.Category, p.Price, p.Currency, p.Image, p.Description}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
