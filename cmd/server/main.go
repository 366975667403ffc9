package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"hordehouse/sim/config"
	"hordehouse/sim/internal/collision"
	"hordehouse/sim/internal/geom"
	"hordehouse/sim/internal/layout"
	"hordehouse/sim/internal/net/ws"
	"hordehouse/sim/internal/sim"
	"hordehouse/sim/internal/telemetry"
	"hordehouse/sim/logging"
	"hordehouse/sim/logging/sinks"
)

func main() {
	var (
		addr           = flag.String("addr", ":8080", "listen address")
		configPath     = flag.String("config", "", "optional catalog overlay (YAML)")
		tickRate       = flag.Int("tick-rate", 30, "simulation frames per second")
		pillarCount    = flag.Int("pillars", 12, "pillar count")
		furnitureCount = flag.Int("furniture", 8, "furniture count")
		seed           = flag.Int64("seed", 0, "world RNG seed (0 = time-based)")
		spawnEvery     = flag.Int("spawn-every", 90, "ticks between spawn gate consultations")
		verbose        = flag.Bool("verbose", false, "emit debug-level simulation events")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hordehouse",
	})

	catalog := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("load catalog", "path", *configPath, "err", err)
		}
		catalog = loaded
		logger.Info("catalog overlay applied", "path", *configPath)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	arena := layout.Generate(catalog.World, *pillarCount, *furnitureCount, rng)
	logger.Info("arena generated", "pillars", len(arena.Pillars), "furniture", len(arena.Furniture))

	minSeverity := logging.SeverityInfo
	if *verbose {
		minSeverity = logging.SeverityDebug
	}
	router := logging.NewRouter(minSeverity, sinks.NewConsoleSink(os.Stdout))
	defer router.Close(context.Background())

	metrics := telemetry.NewCounters()
	var hub *ws.Hub

	world, err := sim.NewWorld(catalog, sim.Deps{
		PlayerPos: func() geom.Vec2 {
			if hub == nil {
				return geom.Vec2{}
			}
			return hub.PlayerPos()
		},
		HasLineOfSight: arena.HasLineOfSight,
		Obstacles:      func() []collision.Circle { return arena.Pillars },
		Furniture:      func() []geom.AABB { return arena.Furniture },
		Publisher:      router,
		RNG:            rng,
	})
	if err != nil {
		logger.Fatal("build world", "err", err)
	}

	var loop *sim.Loop
	loop = sim.NewLoop(world, sim.LoopConfig{
		TickRate:        *tickRate,
		CatchupMaxTicks: 4,
	}, sim.LoopHooks{
		Prepare: func(ctx sim.LoopTickContext) {
			if *spawnEvery <= 0 || ctx.Tick%uint64(*spawnEvery) != 0 {
				return
			}
			loop.Enqueue(func(w *sim.World) {
				w.Compact()
				w.SpawnAuthorized(spawnPoint(catalog.World, rng))
				if w.TrySpawnPickup() {
					logger.Debug("pickup authorized", "tick", w.Tick())
				}
			})
		},
		AfterStep: func(result sim.LoopStepResult) {
			metrics.Add("frames_total", 1)
			if result.ClampedDelta {
				metrics.Add("frames_clamped", 1)
			}
			if hub != nil {
				hub.Broadcast(result)
			}
		},
	})

	hub = ws.NewHub(loop, logger, metrics)

	stop := make(chan struct{})
	go loop.Run(stop)

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(hub, logger))

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Info("listening", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	close(stop)
	server.Shutdown(context.Background())

	stats := router.Stats()
	logger.Info("final counters",
		"events", stats.EventsTotal,
		"dropped", stats.DroppedTotal,
		"telemetry", metrics.Snapshot())
}

// spawnPoint picks a point on the arena's edge band so new actors enter
// from the perimeter.
func spawnPoint(world config.WorldConfig, rng *rand.Rand) geom.Vec2 {
	halfW := world.Width/2 - 1
	halfD := world.Depth/2 - 1
	switch rng.Intn(4) {
	case 0:
		return geom.Vec2{X: -halfW, Z: -halfD + rng.Float64()*2*halfD}
	case 1:
		return geom.Vec2{X: halfW, Z: -halfD + rng.Float64()*2*halfD}
	case 2:
		return geom.Vec2{X: -halfW + rng.Float64()*2*halfW, Z: -halfD}
	default:
		return geom.Vec2{X: -halfW + rng.Float64()*2*halfW, Z: halfD}
	}
}
