package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/config"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/engine"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/queue"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/router"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	clients, err := store.NewClientStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open client store: %v", err)
	}
	vehicles, err := store.NewVehicleStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open vehicle store: %v", err)
	}
	tickets, err := store.NewTicketStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open ticket store: %v", err)
	}
	users, err := store.NewUserStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("open user store: %v", err)
	}

	eng, err := engine.New(engine.Config{
		Floors:          cfg.Floors,
		SectorsPerFloor: cfg.SectorsPerFloor,
		SlotsPerSector:  cfg.SlotsPerSector,
		Clients:         clients,
		Vehicles:        vehicles,
		Tickets:         tickets,
	})
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	// Background consumer turning stay events into the audit log.
	go func() {
		if err := queue.StartStayConsumer(); err != nil {
			log.Printf("stay consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, eng, users, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, grid=%dx%dx%d)",
		addr, cfg.Env, cfg.Floors, cfg.SectorsPerFloor, cfg.SlotsPerSector)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
