// Command server wires the process-wide singletons named in §5 (database
// pool, cache client, vector-index client, embedding client, worker pool)
// and starts the Gin HTTP server, grounded on the teacher's cmd/main.go
// (godotenv.Load + fail-fast env/health checks) generalized from a
// Team8-App demo surface to this engine's §6 inbound surface.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"routeplanner/internal/domain/planner"
	"routeplanner/internal/domain/repository"
	"routeplanner/internal/domain/routebuilder"
	"routeplanner/internal/domain/semantic"
	"routeplanner/internal/domain/spatial"
	"routeplanner/internal/domain/substitution"
	"routeplanner/internal/handler"
	"routeplanner/internal/infrastructure/ai"
	appcache "routeplanner/internal/infrastructure/cache"
	"routeplanner/internal/infrastructure/database"
	appfirestore "routeplanner/internal/infrastructure/firestore"
	apprepo "routeplanner/internal/repository"
	"routeplanner/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("warning: .env file not found, using system environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.ApplyGlobals()

	ctx := context.Background()

	poiStore, visitedStore, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	vectorIndex, err := buildVectorIndex(cfg)
	if err != nil {
		log.Fatalf("vector index init: %v", err)
	}

	embedder := ai.NewEmbeddingClient(ai.Config{
		APIKey:         os.Getenv("EMBEDDING_API_KEY"),
		BaseURL:        envOr("EMBEDDING_BASE_URL", "https://api.openai.com/v1/embeddings"),
		Timeout:        cfg.Timeouts.Embedding,
		RequiresPrefix: envOr("EMBEDDING_REQUIRES_PREFIX", "false") == "true",
	})

	userCacheBackend, cellCacheBackend, err := buildCaches(ctx, cfg)
	if err != nil {
		log.Fatalf("cache init: %v", err)
	}

	spatialSource := spatial.NewSource(poiStore, cellCacheBackend, cfg.SpatialConfig())
	semanticSource := semantic.NewSource(embedder, vectorIndex, poiStore)
	builder := routebuilder.NewBuilder(cfg.RouteBuilderConfig())
	pool := routebuilder.NewWorkerPool(cfg.Workers.RouteBuilderPoolSize)

	orchestrator := planner.New(planner.Config{
		SpatialSource:  spatialSource,
		SemanticSource: semanticSource,
		Builder:        builder,
		Pool:           pool,
		POIStore:       poiStore,
		Cache:          userCacheBackend,
		UserCacheTTL:   cfg.Cache.UserTTL,
	})
	substitutionService := substitution.NewService(userCacheBackend, poiStore, cfg.Cache.UserTTL)

	routesHandler := handler.NewRoutesHandler(orchestrator, substitutionService)
	visitedHandler := handler.NewVisitedHandler(visitedStore)
	router := handler.NewRouter(logger, routesHandler, visitedHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		logger.Info("server starting", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("err", err.Error()))
	}
}

// buildStores selects the POI/visited store backend per configuration
// (store.backend = "postgres" or "supabase"), process-wide singletons torn
// down implicitly at process exit (§5).
func buildStores(cfg config.Config) (repository.POIStore, repository.VisitedStore, error) {
	switch cfg.Store.Backend {
	case "supabase":
		client, err := database.NewSupabaseClient(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_ANON_KEY"))
		if err != nil {
			return nil, nil, err
		}
		// The Supabase REST client has no raw-SQL visited-pois read;
		// visited_pois (a SUPPLEMENT, §6) is only wired against the
		// direct postgres backend.
		return apprepo.NewSupabasePOIStore(client), noopVisitedStore{}, nil
	default:
		pgClient, err := database.NewPostgresClient(database.Config{
			DSN:          os.Getenv("DATABASE_DSN"),
			MaxOpenConns: 50,
			MaxIdleConns: 10,
		})
		if err != nil {
			return nil, nil, err
		}
		return apprepo.NewPostgresPOIStore(pgClient), apprepo.NewPostgresVisitedStore(pgClient), nil
	}
}

func buildVectorIndex(cfg config.Config) (repository.VectorIndex, error) {
	pgClient, err := database.NewPostgresClient(database.Config{DSN: os.Getenv("DATABASE_DSN")})
	if err != nil {
		return nil, err
	}
	dim := 384
	return apprepo.NewPgVectorIndex(pgClient, dim), nil
}

// buildCaches selects the cache backend per configuration (cache.backend =
// "memory" or "firestore"). The H3 cell cache (C3) always uses an
// in-process memory cache regardless of the per-user backend choice,
// since cell-cache entries are cheap to recompute and don't need
// cross-instance durability the way a user's route cache does.
func buildCaches(ctx context.Context, cfg config.Config) (userCache, cellCache repository.Cache, err error) {
	cellCache = appcache.New(cfg.Cache.CellTTL, cfg.Cache.CleanupEvery)

	switch cfg.Cache.Backend {
	case "firestore":
		client, ferr := appfirestore.NewClient(ctx, os.Getenv("FIRESTORE_PROJECT_ID"))
		if ferr != nil {
			return nil, nil, ferr
		}
		store := appfirestore.NewTTLDocumentStore(client, "userRouteCache")
		userCache = store
		go sweepFirestoreLoop(ctx, store, cfg.Cache.CleanupEvery)
	default:
		userCache = appcache.New(cfg.Cache.UserTTL, cfg.Cache.CleanupEvery)
	}
	return userCache, cellCache, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sweepFirestoreLoop periodically evicts expired per-user cache documents
// on the given interval, for the firestore cache backend.
func sweepFirestoreLoop(ctx context.Context, store *appfirestore.TTLDocumentStore, every time.Duration) {
	if every <= 0 {
		every = 10 * time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = store.SweepExpired(ctx, 200)
		}
	}
}

// noopVisitedStore backs visited_pois when the store backend has no
// direct-SQL path for it (store.backend = "supabase"); it reports no
// visited POIs rather than failing the whole process on startup.
type noopVisitedStore struct{}

func (noopVisitedStore) GetVisited(ctx context.Context, userID string) ([]string, error) {
	return []string{}, nil
}
