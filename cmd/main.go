package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/seabattle-companion/api"
	"github.com/saeidalz13/seabattle-companion/db"
	"github.com/saeidalz13/seabattle-companion/db/sqlc"
	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
	mc "github.com/saeidalz13/seabattle-companion/models/connection"
)

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}
	stage := getEnv("STAGE", api.StageDev)
	if stage != api.StageDev && stage != api.StageProd {
		panic("stage must be either dev or prod")
	}
	port, err := strconv.Atoi(getEnv("PORT", "9191"))
	if err != nil {
		panic(err)
	}

	opts := []api.Option{api.WithStage(stage)}

	// Analytics counters are optional; without a database they are dropped
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		conn := db.MustConnectToDb(psqlUrl, getEnv("MIGRATION_URL", db.DefaultMigrationURL))
		defer conn.Close()
		opts = append(opts, api.WithAnalytics(sqlc.NewDbManager(conn).Analytics))
	} else {
		log.Println("DATABASE_URL not set; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager()
	gameManager := mb.NewBattleshipGameManager(mb.MustNewRandomFleetGenerator())

	rp, err := api.NewRequestProcessor(sessionManager, gameManager, opts...)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionManager.CleanupPeriodically(ctx)

	server := &http.Server{
		Addr:              "0.0.0.0:" + fmt.Sprintf("%d", port),
		Handler:           api.NewRouter(rp),
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Println("server shutdown:", err)
		}
	}()

	log.Printf("Listening to port %d\n", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}
