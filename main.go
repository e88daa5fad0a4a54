package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-telegram/bot"
)

// key space: "stations:<userID>" -> []Station, "message:<userID>" -> live message id
var db *badger.DB

var (
	cfg *Config
	ttc *TTC
	mtr *Metrics
)

func main() {
	var err error

	// init context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err = loadConfig()
	if err != nil {
		log.Println("Error: could not load config: ", err)
		return
	}

	// init database
	db, err = badger.Open(badger.DefaultOptions(cfg.DBPath))
	if err != nil {
		log.Println("Error: could not open db: ", err)
		return
	}
	defer db.Close()

	ttc = newTTC(cfg.APIKey)

	// metrics endpoint + per-minute counter reset
	mtr = newMetrics()
	srv := mtr.Serve(cfg.MetricsAddr)
	defer srv.Shutdown(context.Background())
	go mtr.RunResetLoop(ctx)

	// handlers run synchronously: one event at a time per process
	opts := []bot.Option{
		bot.WithDefaultHandler(messageHandler),
		bot.WithNotAsyncHandlers(),
	}

	b, err := bot.New(cfg.Token, opts...)
	if nil != err {
		log.Println("Error: could not create bot: ", err)
		return
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, startHandler)
	b.RegisterHandler(bot.HandlerTypeMessageText, "help", bot.MatchTypeCommand, helpCommandHandler)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "schedule", bot.MatchTypeExact, scheduleMenuHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "back_to_schedule", bot.MatchTypeExact, scheduleMenuHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "help", bot.MatchTypeExact, helpHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "my_stations", bot.MatchTypeExact, myStationsHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "back", bot.MatchTypeExact, backHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "remove_", bot.MatchTypePrefix, removeStationHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "schedule_", bot.MatchTypePrefix, stationScheduleHandler)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "refresh_", bot.MatchTypePrefix, stationScheduleHandler)

	b.Start(ctx)
}
