// Package main implements the scheduled Lambda that resets per-day todo state.
// An EventBridge rule fires it after midnight with the owners to reset; each
// owner's todos get their completed flag and daily tomato count cleared.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"tomato-backend/application/commands"
	commandbus "tomato-backend/application/commands/bus"
	"tomato-backend/infrastructure/config"
	"tomato-backend/infrastructure/di"
)

var (
	commandBus *commandbus.CommandBus
	logger     *zap.Logger
)

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependency container: %v", err)
	}

	commandBus = container.CommandBus
	logger = container.Logger

	log.Println("Daily-reset handler initialized")
}

// ResetRequest lists the owners whose todos should be reset
type ResetRequest struct {
	OwnerIDs []string `json:"owner_ids"`
}

// ResetResponse reports how the batch went
type ResetResponse struct {
	Requested int      `json:"requested"`
	Reset     int      `json:"reset"`
	Failed    []string `json:"failed,omitempty"`
}

// HandleReset sends a reset command per owner, continuing past individual
// failures so one bad owner does not block the rest of the batch.
func HandleReset(ctx context.Context, request ResetRequest) (*ResetResponse, error) {
	response := &ResetResponse{Requested: len(request.OwnerIDs)}

	for _, ownerID := range request.OwnerIDs {
		cmd := commands.ResetDailyStateCommand{OwnerID: ownerID}
		if err := commandBus.Send(ctx, cmd); err != nil {
			logger.Error("Daily reset failed for owner",
				zap.String("ownerID", ownerID),
				zap.Error(err),
			)
			response.Failed = append(response.Failed, ownerID)
			continue
		}
		response.Reset++
	}

	logger.Info("Daily reset batch finished",
		zap.Int("requested", response.Requested),
		zap.Int("reset", response.Reset),
		zap.Int("failed", len(response.Failed)),
	)

	return response, nil
}

// handler accepts either an EventBridge scheduled event with the owner list in
// its detail, or a direct invocation carrying the list at the top level.
func handler(ctx context.Context, event json.RawMessage) (*ResetResponse, error) {
	var scheduled awsevents.CloudWatchEvent
	if err := json.Unmarshal(event, &scheduled); err == nil && len(scheduled.Detail) > 0 {
		var request ResetRequest
		if err := json.Unmarshal(scheduled.Detail, &request); err == nil && len(request.OwnerIDs) > 0 {
			return HandleReset(ctx, request)
		}
	}

	var request ResetRequest
	if err := json.Unmarshal(event, &request); err == nil && len(request.OwnerIDs) > 0 {
		return HandleReset(ctx, request)
	}

	return nil, fmt.Errorf("unable to parse reset event")
}

func main() {
	lambda.Start(handler)
}
