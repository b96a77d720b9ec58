// Command spectate runs the optional WebSocket relay described in
// SPEC_FULL.md section 4.11: it subscribes to a match's Redis ledger
// channel and re-broadcasts entries to connected spectators. It does
// not read ledger files; --redis-url is required. Grounded on the
// teacher's cmd/server/main.go wiring style.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/htamlive/cliquey-dtai-judge/internal/config"
	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
	ledgerredis "github.com/htamlive/cliquey-dtai-judge/internal/ledger/redis"
	"github.com/htamlive/cliquey-dtai-judge/internal/logger"
	"github.com/htamlive/cliquey-dtai-judge/internal/middleware"
	"github.com/htamlive/cliquey-dtai-judge/internal/spectate"
)

func main() {
	cfg := config.Load()

	var (
		addr     string
		redisURL string
		matchID  string
	)
	flag.StringVar(&addr, "addr", ":"+cfg.SpectatePort, "HTTP listen address")
	flag.StringVar(&redisURL, "redis-url", cfg.RedisURL, "Redis URL publishing match ledger entries")
	flag.StringVar(&matchID, "match", "", "match ID to relay (matches cmd/judge's --output base name)")
	flag.Parse()

	logger.Init(cfg.LogLevel, false)

	if redisURL == "" || matchID == "" {
		log.Fatal().Msg("spectate requires --redis-url and --match")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down")
		cancel()
	}()

	client, err := ledgerredis.NewClient(redisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to redis")
	}
	defer client.Close()

	hub := spectate.NewHub()
	jwtMgr := spectate.NewJWTManager(cfg.JWTSecret)
	server := spectate.NewServer(hub, jwtMgr)

	go relayFromRedis(ctx, client, matchID, hub)

	mux := http.NewServeMux()
	server.Routes(mux)
	handler := middleware.Chain(mux, middleware.CORS("*"), middleware.Logger)

	log.Info().Str("addr", addr).Str("match", matchID).Msg("spectate server listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("spectate server exited")
	}
}

// relayFromRedis subscribes to the match's ledger pub/sub channel and
// forwards every published entry to the local hub, so a spectator
// connected to this process sees what cmd/judge's redis.Sink publishes.
func relayFromRedis(ctx context.Context, client *ledgerredis.Client, matchID string, hub *spectate.Hub) {
	sub := client.Underlying().Subscribe(ctx, "match:"+matchID+":ledger")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var entry ledger.Entry
			if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
				log.Warn().Err(err).Msg("dropping malformed ledger message")
				continue
			}
			hub.BroadcastEntry(matchID, entry)
		}
	}
}
