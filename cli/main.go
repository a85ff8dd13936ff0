// Package main provides a terminal chat client for the stylist gateway.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xiaot623/stylist/internal/chatclient"
	"github.com/xiaot623/stylist/internal/logging"
	"github.com/xiaot623/stylist/internal/tui"
)

func main() {
	addr := flag.String("addr", "http://localhost:3000", "Gateway base URL")
	sanitize := flag.Bool("sanitize", false, "Sanitize bot HTML before rendering")
	style := flag.String("style", "auto", "Markdown style (auto, dark, light, notty)")
	logPath := flag.String("log", "", "Write client logs to this file")
	logLevel := flag.String("log-level", "info", "Log level")
	timeout := flag.Duration("timeout", 0, "Request timeout (0 disables)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, *logLevel, "text")
	logger.Info("starting chat client", "addr", *addr, "sanitize", *sanitize, "timeout", timeout.String())

	client := chatclient.NewClient(*addr, *timeout)
	if err := tui.Run(client, tui.Options{Sanitize: *sanitize, Style: *style, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "chat client: %v\n", err)
		os.Exit(1)
	}
	logger.Info("chat client stopped")
}
