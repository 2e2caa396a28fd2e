package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"matchbook/internal/netsrv"
	"matchbook/internal/venue"
)

func main() {
	address := flag.String("address", "0.0.0.0", "address to bind the daemon on")
	port := flag.Int("port", 9001, "port to bind the daemon on")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	registry := venue.NewRegistry()
	srv := netsrv.New(*address, *port, registry)

	go srv.Run(ctx)
	<-ctx.Done()
}
