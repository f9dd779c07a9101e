package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

// SweepCmd разовая очистка просроченных pending, например из cron
type SweepCmd struct{}

func (c *SweepCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, g.ConfigPath)
	if err != nil {
		return err
	}
	defer app.Close()

	n, err := app.reservations.SweepExpired(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("expired %d pending reservations\n", n)
	return nil
}
