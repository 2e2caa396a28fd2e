package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"

	"matchbook/internal/netsrv"
	"matchbook/internal/wire"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the matching daemon")
	action := flag.String("action", "place", "action to perform: ['place', 'log']")
	ticker := flag.String("ticker", "AAPL", "ticker symbol (max 16 chars)")
	orderText := flag.String("order", "", "order-text line, e.g. 'Lim B $101 #5 u1' (required for -action=place)")
	flag.Parse()

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *serverAddr, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *serverAddr)

	go readReports(conn)

	switch strings.ToLower(*action) {
	case "place":
		if *orderText == "" {
			log.Fatal("error: -order is required for -action=place")
		}
		order, err := wire.ParseOrder(*orderText)
		if err != nil {
			log.Fatalf("invalid order: %v", err)
		}
		if _, err := conn.Write(netsrv.EncodeNewOrder(*ticker, order)); err != nil {
			log.Fatalf("failed to send order: %v", err)
		}
		fmt.Printf("-> sent %s %s\n", *ticker, *orderText)

	case "log":
		if _, err := conn.Write(netsrv.EncodeLogBook()); err != nil {
			log.Fatalf("failed to send log request: %v", err)
		}
		fmt.Println("-> sent LogBook request")

	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("listening for reports... (press Ctrl+C to exit)")
	select {}
}

// readReports prints every Report frame the daemon sends back until the
// connection closes.
func readReports(conn net.Conn) {
	for {
		report, err := netsrv.ReadReport(conn)
		if err != nil {
			if err != io.EOF {
				log.Printf("connection lost: %v", err)
			}
			os.Exit(0)
		}

		switch report.Type {
		case netsrv.ErrorReport:
			fmt.Printf("\n[ERROR] %s\n", report.Text)
		case netsrv.BookReport:
			fmt.Printf("\n[BOOK %s] %s\n", report.Ticker, report.Text)
		default:
			fmt.Printf("\n[EXECUTION %s] %s\n", report.Ticker, report.Text)
		}
	}
}
