// Command netfeed serves synthetic classifier traffic over a websocket so the
// game can be driven by a remote feed.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/striker/netmon"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8765", "listen address")
	interval := flag.Duration("interval", 200*time.Millisecond, "mean gap between packets")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one per client")
	flag.Parse()

	mux := http.NewServeMux()
	mux.Handle("/feed", &netmon.FeedHandler{
		NewSource: func() netmon.PacketSource {
			return netmon.NewSyntheticSource(*seed, *interval)
		},
	})

	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("netfeed: shutdown: %v", err)
		}
	}()

	log.Printf("netfeed: serving ws://%s/feed", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
