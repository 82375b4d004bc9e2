package models

import (
	"time"

	"github.com/google/uuid"
)

// OptimizationRequestMessage is a Kafka request to optimize one item
type OptimizationRequestMessage struct {
	RequestID           uuid.UUID `json:"request_id"`
	NmID                int64     `json:"nm_id"`
	Objective           string    `json:"objective"`
	ConsiderCompetitors bool      `json:"consider_competitors"`
	Timestamp           time.Time `json:"timestamp"`
}

// RecommendationMessage is the Kafka message published after an optimization
type RecommendationMessage struct {
	RequestID   uuid.UUID           `json:"request_id"`
	Result      *OptimizationResult `json:"result"`
	PublishedAt time.Time           `json:"published_at"`
}
