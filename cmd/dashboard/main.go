package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/peopleevents/internal/cli"
	"github.com/mmynk/peopleevents/internal/client"
	"github.com/mmynk/peopleevents/internal/client/sessionstore"
	"github.com/mmynk/peopleevents/pkg/logging"
)

// version is set at build time via ldflags.
var version = "dev"

const usage = `usage: dashboard <command> [flags]

commands:
  login [--user NAME]     sign in and remember the session
  logout                  forget the session
  whoami                  show the signed-in user
  people [--json]         list people, newest first
  events [--json]         list events, earliest first
  add-person --name ...   add a person (admin)
  edit-person <id> ...    change a person (admin)
  delete-person <id>      delete a person (admin)
  add-event --title --date ...
  edit-event <id> ...
  delete-event <id>
  version
`

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	level, err := logging.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		level = slog.LevelWarn
	}
	logging.SetupCLI(os.Stderr, level)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]
	if cmd == "version" {
		fmt.Printf("dashboard %s\n", version)
		return
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Print(usage)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sessions, closeSessions := openSessions()
	defer closeSessions()

	d := client.NewDashboard(client.Options{
		BaseURL:  getEnv("PE_SERVER_URL", "http://localhost:8080"),
		Sessions: sessions,
	})

	if err := cli.New(d).Run(ctx, cmd, os.Args[2:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

// openSessions picks Redis when PE_REDIS_ADDR is set, else the session file.
func openSessions() (sessionstore.Store, func()) {
	if addr := os.Getenv("PE_REDIS_ADDR"); addr != "" {
		s := sessionstore.NewRedisStore(addr, os.Getenv("PE_REDIS_PASSWORD"), getEnv("PE_REDIS_NAMESPACE", "peopleevents:"))
		slog.Debug("Using Redis session store", "addr", addr)
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("Closing Redis session store", "error", err)
			}
		}
	}
	dir := sessionstore.Dir()
	slog.Debug("Using file session store", "dir", dir)
	return sessionstore.NewFileStore(dir), func() {}
}
