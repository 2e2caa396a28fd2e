// Command matchbook reads order-text lines from the file named by its
// first argument (stdin is not read) and
// prints the log-text lines each one produces, driving a single
// in-process order book.
package main

import (
	"bufio"
	"fmt"
	"os"

	"matchbook/internal/book"
	"matchbook/internal/logger"
	"matchbook/internal/wire"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: matchbook <filename>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "matchbook: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	b := book.New()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		order, err := wire.ParseOrder(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "matchbook: %v\n", err)
			os.Exit(1)
		}

		l := logger.NewVectorLogger()
		b.ExecuteOrder(order, l)
		for _, item := range l.Items() {
			fmt.Println(wire.FormatLogItem(item))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "matchbook: %v\n", err)
		os.Exit(1)
	}
}
