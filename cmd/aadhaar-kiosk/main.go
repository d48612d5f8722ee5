package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/ashwink/aadhaar-kiosk/internal/kiosk"
	"github.com/ashwink/aadhaar-kiosk/internal/scanning"
	"github.com/ashwink/aadhaar-kiosk/internal/sink"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("aadhaar-kiosk")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "aadhaar-kiosk.db", "Submission journal file path (empty to disable)")
		sheetURL    = fs.StringLong("sheet-url", "", "Apps Script web-app deployment URL the submissions are POSTed to")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("AADHAAR_KIOSK"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize sink
	if *sheetURL == "" {
		slog.Error("Sheet URL is required. Set --sheet-url flag or AADHAAR_KIOSK_SHEET_URL environment variable")
		os.Exit(1)
	}
	webhook, err := sink.NewWebhook(*sheetURL)
	if err != nil {
		slog.Error("Failed to initialize sink", "error", err)
		os.Exit(1)
	}

	// Initialize journal
	var journal kiosk.Journal
	if *dbPath != "" {
		slog.Info("Initializing submission journal...", "path", *dbPath)
		boltJournal, err := kiosk.NewBoltJournal(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize journal", "error", err)
			os.Exit(1)
		}
		defer boltJournal.Close()
		journal = boltJournal
	}

	// Initialize scanner relay, service and session
	relay := scanning.NewRelay()
	defer relay.Close()

	service := kiosk.NewService(webhook, journal)
	session := kiosk.NewSession(relay, service)
	defer session.Close()

	// Initialize server
	basicAuth := kiosk.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := kiosk.NewServer(session, service, relay, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
