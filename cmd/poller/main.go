// Утилита сверки для витрины: следит за продажами через публичный API,
// пока каждая не достигнет терминального статуса, и печатает итог.
//
//	go run ./cmd/poller <sale-id> [<sale-id> ...]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/tienda_sales/config"
	"github.com/Gunvolt24/tienda_sales/internal/poller"
	"github.com/Gunvolt24/tienda_sales/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env.local")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: poller <sale-id> [<sale-id> ...]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		panic(err)
	}
	defer func() { _ = cleanup() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := poller.New(poller.Config{
		BaseURL:      cfg.Poller.BaseURL,
		Interval:     cfg.Poller.Interval,
		RetryInitial: cfg.Poller.RetryInitial,
		RetryMax:     cfg.Poller.RetryMax,
	}, logg)

	exitCode := 0
	for _, saleID := range os.Args[1:] {
		sale, err := p.Watch(ctx, saleID)
		if err != nil {
			logg.Errorf(ctx, "watch %s failed: %v", saleID, err)
			exitCode = 1
			if ctx.Err() != nil {
				break
			}
			continue
		}
		fmt.Printf("%s\t%s\ttracking=%s\n", sale.ID, sale.Status, sale.TrackingCode)
	}
	os.Exit(exitCode)
}
