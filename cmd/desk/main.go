package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bumblebee-lounge/lounge-api/internal/config"
	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/feed"
	kafkax "github.com/bumblebee-lounge/lounge-api/internal/kafka"
	"github.com/bumblebee-lounge/lounge-api/internal/orders"
	"github.com/bumblebee-lounge/lounge-api/internal/postgres"
	"github.com/bumblebee-lounge/lounge-api/internal/redisx"
	"github.com/bumblebee-lounge/lounge-api/internal/reservations"
)

// desk is the staff console: it follows the kitchen queue and today's
// reservations and reprints them on every change.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// read-only: no change publisher
	store := postgres.NewStore(db, nil, cfg.ServiceName+"-desk")

	om := &orders.Manager{Store: store}
	rm := &reservations.Manager{Store: store}

	unsubOrders, err := om.ListenPending(printOrders)
	if err != nil {
		log.Fatalf("orders feed: %v", err)
	}
	defer unsubOrders()

	unsubRes, err := rm.ListenToday(printReservations)
	if err != nil {
		log.Fatalf("reservations feed: %v", err)
	}
	defer unsubRes()

	group := getenv("DESK_GROUP", "lounge-desk")
	workers := mustAtoi(os.Getenv("DESK_WORKERS"), "4")
	topics := []string{
		docstore.TopicFor(orders.Collection),
		docstore.TopicFor(reservations.Collection),
	}
	feedSvc := &feed.Service{Hub: store.Hub(), Redis: rdb, ServiceName: cfg.ServiceName + "-desk"}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topics, workers)

	go func() {
		log.Printf("desk consumer started: group=%s workers=%d", group, workers)
		if err := cons.Start(ctx, feedSvc.HandleChange); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down desk...")
}

func printOrders(list []orders.Order) {
	log.Printf("── commandes en cours: %d", len(list))
	for _, o := range list {
		card := orders.FormatOrderCard(o)
		log.Printf("  %s %s · %s · %s · %s · %d DA",
			o.OrderID, card.Time, card.Items, card.Status, card.Paid, o.Total)
	}
}

func printReservations(rs []reservations.Reservation) {
	log.Printf("── réservations du jour: %d", len(rs))
	for _, r := range rs {
		log.Printf("  %s %s %s · %d pers · %s",
			r.ReservationID, r.Date, r.Time, r.Guests, r.Status.Label().Text)
	}
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
