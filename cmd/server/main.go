package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/vrevia/vrevia-back/internal/api"
	"github.com/vrevia/vrevia-back/internal/config"
	"github.com/vrevia/vrevia-back/internal/cron"
	"github.com/vrevia/vrevia-back/internal/db"
	"github.com/vrevia/vrevia-back/internal/tts"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()

	db.InitDB(cfg.DBUrl)

	// Audio synthesis is optional; the endpoint reports unavailable without it.
	var synth tts.Synthesizer
	if g, err := tts.NewGoogle(context.Background()); err != nil {
		log.Printf("⚠️ Text-to-speech disabled: %v", err)
	} else {
		synth = g
		defer g.Close()
	}

	r := api.SetupRouter(cfg, synth)

	cron.StartJobs(cfg)

	log.Printf("Server running on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
