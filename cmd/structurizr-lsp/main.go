package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/xerian-dev/xerian-structurizr/lspserver"
	"github.com/xerian-dev/xerian-structurizr/util"
)

const defaultDebounce = 400 * time.Millisecond

func main() {
	godotenv.Load()
	util.SetupLogging(os.Getenv("STRUCTURIZR_LSP_LOG"))

	listen := flag.String("listen", os.Getenv("STRUCTURIZR_LSP_LISTEN"),
		"serve LSP over websocket on this address instead of stdio")
	flag.Parse()

	s := server{debounce: debounceFromEnv()}
	a := lspserver.MethodMap{
		"initialize":                      lspserver.Zu(s.Initialize),
		"initialized":                     lspserver.Zu(s.Initialized),
		"textDocument/didOpen":            lspserver.Zu(s.DidOpen),
		"textDocument/didChange":          lspserver.Zu(s.DidChange),
		"textDocument/didClose":           lspserver.Zu(s.DidClose),
		"textDocument/hover":              lspserver.Zu(s.Hover),
		"textDocument/documentSymbol":     lspserver.Zu(s.DocumentSymbol),
		"textDocument/completion":         lspserver.Zu(s.Completion),
		"workspace/didChangeWatchedFiles": lspserver.Zu(s.DidChangeWatchedFiles),
	}

	if *listen != "" {
		slog.Info("serving over websocket", "addr", *listen)
		if err := lspserver.ListenAndServe(*listen, a); err != nil {
			slog.Error("websocket server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	lspserver.StartServer(a)
}

func debounceFromEnv() time.Duration {
	raw := os.Getenv("STRUCTURIZR_LSP_DEBOUNCE_MS")
	if raw == "" {
		return defaultDebounce
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		slog.Warn("ignoring bad STRUCTURIZR_LSP_DEBOUNCE_MS", "value", raw)
		return defaultDebounce
	}
	return time.Duration(ms) * time.Millisecond
}
