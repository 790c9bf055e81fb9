package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/bumblebee-lounge/lounge-api/internal/browser"
	"github.com/bumblebee-lounge/lounge-api/internal/config"
	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/feed"
	"github.com/bumblebee-lounge/lounge-api/internal/httpx"
	kafkax "github.com/bumblebee-lounge/lounge-api/internal/kafka"
	"github.com/bumblebee-lounge/lounge-api/internal/notify"
	"github.com/bumblebee-lounge/lounge-api/internal/orders"
	"github.com/bumblebee-lounge/lounge-api/internal/postgres"
	"github.com/bumblebee-lounge/lounge-api/internal/redisx"
	"github.com/bumblebee-lounge/lounge-api/internal/reservations"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Change-feed producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, 1024)
	prod.Start(ctx)

	// Document store
	store := postgres.NewStore(db, kafkax.ChangeFeed{P: prod}, cfg.ServiceName)
	if err := store.Ensure(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// WhatsApp notifications
	opener, closeOpener, err := newOpener(cfg)
	if err != nil {
		log.Fatalf("opener: %v", err)
	}
	defer closeOpener()
	sched := &notify.Scheduler{
		Opener:      opener,
		ClientDelay: cfg.ClientNotifyWait,
		OwnerDelay:  cfg.OwnerNotifyWait,
	}

	// Managers & handler
	om := &orders.Manager{Store: store, Notify: sched, OwnerPhone: cfg.OwnerPhone}
	rm := &reservations.Manager{Store: store, Notify: sched, OwnerPhone: cfg.OwnerPhone}
	router := httpx.NewRouter()
	h := &httpx.Handler{
		KV:           redisx.KV{Client: rdb, TTL: cfg.CartTTL},
		Orders:       om,
		Reservations: rm,
	}
	h.Register(router)

	// Change-feed consumer keeps this instance's live feeds fresh when
	// another instance writes. The group must be unique per instance.
	feedSvc := &feed.Service{Hub: store.Hub(), Redis: rdb, ServiceName: cfg.ServiceName}
	topics := []string{
		docstore.TopicFor(orders.Collection),
		docstore.TopicFor(reservations.Collection),
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, getenv("FEED_GROUP", cfg.ServiceName+"-feed"), topics, 4)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return cons.Start(gctx, feedSvc.HandleChange)
	})

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel() // stop consumer + producer loop
	if err := g.Wait(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	prod.WaitClosed() // flush queued change events
}

func newOpener(cfg config.Config) (notify.Opener, func(), error) {
	if cfg.NotifyOpener == "browser" {
		b, err := browser.New()
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	}
	return notify.LogOpener{}, func() {}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
