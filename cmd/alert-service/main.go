package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/disruption-shield/internal/config"
	"github.com/harborline/disruption-shield/internal/contracts"
	"github.com/harborline/disruption-shield/internal/mq"
	"github.com/harborline/disruption-shield/internal/storage"
)

func main() {
	cfg := config.Load()
	if !cfg.EventsEnabled() {
		log.Fatal("alert-service requires KAFKA_BROKERS to be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("alert-service database error: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("alert-service migration error: %v", err)
	}

	repo := storage.NewRepository(dbPool)

	reader := mq.NewReader(cfg.KafkaBrokers, cfg.KafkaTopicDecisions, cfg.ConsumerGroupPrefix+"-alert-service")
	defer reader.Close()

	log.Printf("alert-service consuming %s cooldown=%s", cfg.KafkaTopicDecisions, cfg.AlertCooldown)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("alert-service shutting down")
				return
			}
			log.Printf("alert-service read error: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		event, err := mq.ParseMessageJSON[contracts.DecisionEvent](msg)
		if err != nil {
			log.Printf("alert-service decode decision event error: %v", err)
			continue
		}

		if event.RiskLevel != contracts.RiskHigh && event.RiskLevel != contracts.RiskCritical {
			continue
		}

		exists, err := repo.HasOpenAlertInCooldown(ctx, event.ProductID, cfg.AlertCooldown)
		if err != nil {
			log.Printf("alert-service cooldown check error: %v", err)
			continue
		}
		if exists {
			continue
		}

		alert := contracts.AlertRecord{
			ID:              uuid.NewString(),
			DecisionEventID: event.ID,
			ProductID:       event.ProductID,
			Origin:          event.Origin,
			Destination:     event.Destination,
			Title:           fmt.Sprintf("%s disruption risk for product %s", event.RiskLevel, event.ProductID),
			Description: fmt.Sprintf("Route %s to %s puts $%.0f of revenue at risk. Recommended plan: %s (total impact $%.0f, %.0f days).",
				event.Origin, event.Destination, event.RevenueLoss, event.ChosenOption, event.TotalImpact, event.TimelineDays),
			RiskLevel:   event.RiskLevel,
			RevenueLoss: event.RevenueLoss,
			Status:      "open",
		}

		if err := repo.InsertAlert(ctx, alert); err != nil {
			log.Printf("alert-service insert alert error: %v", err)
			continue
		}

		log.Printf("alert created id=%s product=%s level=%s loss=%.0f", alert.ID, alert.ProductID, alert.RiskLevel, alert.RevenueLoss)
	}
}
