package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"

	"github.com/harborline/disruption-shield/internal/config"
	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/httpx"
	"github.com/harborline/disruption-shield/internal/mq"
	"github.com/harborline/disruption-shield/internal/narrative"
	"github.com/harborline/disruption-shield/internal/pipeline"
	"github.com/harborline/disruption-shield/internal/refdata"
	"github.com/harborline/disruption-shield/internal/routing"
	"github.com/harborline/disruption-shield/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := refdata.Load()
	if err != nil {
		log.Fatalf("shield-api reference data error: %v", err)
	}

	dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("shield-api database error: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("shield-api migration error: %v", err)
	}

	repo := storage.NewRepository(dbPool)

	var gen narrative.Generator
	if cfg.GroqAPIKey != "" {
		gen = narrative.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
	} else {
		log.Println("shield-api: GROQ_API_KEY unset, narratives degrade to deterministic fallbacks")
	}

	var writer *kafka.Writer
	if cfg.EventsEnabled() {
		writer = mq.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopicDecisions)
		defer writer.Close()
	}

	pipe := pipeline.New(catalog, gen, cfg.NarrativeTimeout, cfg.UnitPrice)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(90 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "shield-api"})
	})

	router.Get("/v1/locations", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"locations": catalog.Locations()})
	})

	router.Post("/v1/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req contracts.AnalyzeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		result, err := pipe.Run(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		if writer != nil {
			publishDecision(r.Context(), writer, result)
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
	})

	router.Post("/v1/execute-plan", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID    string `json:"product_id"`
			ChosenOption string `json:"chosen_option"`
			Details      string `json:"details"`
		}
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		record, err := pipeline.ExecutePlan(req.ProductID, req.ChosenOption, req.Details)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "execution": record})
	})

	router.Post("/v1/routes/bypass", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Route       contracts.Route `json:"route"`
			DisruptedID string          `json:"disrupted_id"`
		}
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		pool, err := repo.ListNodes(r.Context(), "", 0)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		// Disruption state lives in the reference tables, keyed by name.
		for i := range pool {
			pool[i].Disruption = catalog.Disruption(pool[i].Name)
		}

		outcome, err := routing.Bypass(req.Route, req.DisruptedID, pool)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, outcome)
	})

	router.Post("/v1/routes/splice", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Segments []contracts.Segment `json:"segments"`
			FromID   string              `json:"from_id"`
			ToID     string              `json:"to_id"`
			NewNode  contracts.Node      `json:"new_node"`
		}
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		result, err := routing.Splice(req.Segments, req.FromID, req.ToID, req.NewNode)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, result)
	})

	router.Post("/v1/routes/plan", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Cities    []string `json:"cities"`
			NumRoutes int      `json:"num_routes"`
		}
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if len(req.Cities) < 2 {
			httpx.WriteError(w, &contracts.ValidationError{Field: "cities", Msg: "need at least an origin and a destination"})
			return
		}

		cityNodes := make([][]contracts.Node, 0, len(req.Cities))
		for _, city := range req.Cities {
			nodes, err := repo.NodesInCity(r.Context(), city)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			if len(nodes) == 0 {
				httpx.WriteError(w, &contracts.ValidationError{Field: "cities", Msg: "no transport nodes found for " + city})
				return
			}
			cityNodes = append(cityNodes, nodes)
		}

		routes := routing.ComputeRoutes(cityNodes, req.NumRoutes)
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"routes": routes})
	})

	router.Get("/v1/nodes", func(w http.ResponseWriter, r *http.Request) {
		nodeType := r.URL.Query().Get("type")
		limit := parseLimit(r.URL.Query().Get("limit"), 200)
		nodes, err := repo.ListNodes(r.Context(), nodeType, limit)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": nodes})
	})

	router.Get("/v1/nodes/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		nodes, err := repo.SearchNodes(r.Context(), q, parseLimit(r.URL.Query().Get("limit"), 20))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": nodes})
	})

	router.Get("/v1/alerts", func(w http.ResponseWriter, r *http.Request) {
		alerts, err := repo.ListAlerts(r.Context(), r.URL.Query().Get("status"), parseLimit(r.URL.Query().Get("limit"), 100))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": alerts})
	})

	router.Patch("/v1/alerts/{id}/ack", func(w http.ResponseWriter, r *http.Request) {
		updateAlert(w, r, repo, "acknowledged")
	})

	router.Patch("/v1/alerts/{id}/resolve", func(w http.ResponseWriter, r *http.Request) {
		updateAlert(w, r, repo, "resolved")
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("shield-api listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("shield-api server error: %v", err)
	}
}

func publishDecision(ctx context.Context, writer *kafka.Writer, result contracts.AnalysisResult) {
	event := contracts.DecisionEvent{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		ProductID:    result.Risk.ProductID,
		Origin:       result.Monitoring.Origin,
		Destination:  result.Monitoring.Destination,
		RiskLevel:    result.Risk.RiskLevel,
		RevenueLoss:  result.Risk.RevenueLoss,
		ChosenOption: result.Decision.Chosen.Name,
		TotalImpact:  result.Decision.Chosen.TotalImpact,
		TimelineDays: result.Decision.Chosen.TimelineDays,
	}
	if err := mq.PublishJSON(ctx, writer, event.Key(), event); err != nil {
		log.Printf("shield-api publish decision event error: %v", err)
	}
}

func updateAlert(w http.ResponseWriter, r *http.Request, repo *storage.Repository, status string) {
	id := chi.URLParam(r, "id")
	if err := repo.UpdateAlertStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpx.WriteJSON(w, http.StatusNotFound, map[string]any{"error": "alert not found"})
			return
		}
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
