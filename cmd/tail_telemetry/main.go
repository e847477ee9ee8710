package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shell-assistant-be/internal/constant"
	"shell-assistant-be/pkg/events"
	pktNats "shell-assistant-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Tails routing decisions off the NATS stream for live threshold tuning.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		url = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Fatalf("Failed to connect subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(constant.RoutingDecisionSubject, "telemetry-tail", func(ctx context.Context, event events.Event) error {
		data := event.Payload()

		line := fmt.Sprintf("[%s] session=%v pattern=%v route=%v query=%q",
			event.Timestamp().Format("15:04:05"),
			data["session_id"], data["matched_pattern_id"], data["route_final"],
			data["normalized_query"])

		if deterministic, _ := data["route_deterministic"].(bool); deterministic {
			color.Green(line)
		} else {
			color.Yellow(line)
		}
		if corrected, _ := data["user_corrected_next_turn"].(bool); corrected {
			color.Red("  ^ user backed out on the next turn")
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	color.Cyan("Tailing routing decisions (ctrl-c to stop)...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
