package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble2048/internal/platform/web"
	"github.com/vovakirdan/bubble2048/internal/storage"
)

var (
	flagWebAddr string
	flagWebIdle time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/WebSocket server",
	Long: `Start an HTTP server with a JSON API and live play over WebSocket.

Routes:
  GET    /                              - Browser client
  POST   /api/sessions                  - New session ({"difficulty":"hard"} optional)
  GET    /api/sessions/{id}             - Session state
  DELETE /api/sessions/{id}             - End a session
  POST   /api/sessions/{id}/moves       - Play a move ({"direction":"left"})
  POST   /api/sessions/{id}/continue    - Keep playing after 2048
  POST   /api/sessions/{id}/reset       - New game in the session
  GET    /api/sessions/{id}/ws          - WebSocket: send {"type":"move","direction":"up"}

Sessions idle for longer than --idle are removed.

Examples:
  bubble2048 web
  bubble2048 web --addr :9000 --idle 10m
  bubble2048 web --seed 1 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().DurationVar(&flagWebIdle, "idle", 30*time.Minute, "Remove sessions idle for this long")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := serverLogger("bubble2048-web")

	opts := web.Options{
		Config: loadGameConfig(logger),
		Seed:   flagSeed,
		Logger: logger,
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	svc := web.NewService(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go svc.RunJanitor(ctx, time.Minute, flagWebIdle)

	if err := web.ListenAndServe(ctx, flagWebAddr, web.NewServer(svc, logger), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
