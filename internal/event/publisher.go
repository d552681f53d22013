// Package event publishes search analytics events.
package event

import (
	"context"
	"log/slog"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	pkgkafka "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/kafka"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/logger"
)

// Topic and event type for search analytics.
const (
	TopicSearchPerformed = "storefront.search.performed"
	TypeSearchPerformed  = "search.performed"

	source        = "search-service"
	aggregateType = "search"
)

// SearchPerformedData is the payload of a search.performed event.
type SearchPerformedData struct {
	Query      string               `json:"query"`
	Filters    domain.SearchFilters `json:"filters"`
	Sort       string               `json:"sort"`
	Page       int                  `json:"page"`
	TotalCount int                  `json:"total_count"`
	Status     string               `json:"status"`
	Reason     string               `json:"reason,omitempty"`
	TookMs     int64                `json:"took_ms"`
	VisitorID  string               `json:"visitor_id,omitempty"`
}

// Producer is the part of *pkgkafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Publisher emits search analytics. Publishing is best effort: failures are
// logged and never reach the caller.
type Publisher struct {
	producer Producer
	logger   *slog.Logger
}

// NewPublisher creates a publisher on producer.
func NewPublisher(producer Producer, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// SearchPerformed publishes one search.performed event for resp.
func (p *Publisher) SearchPerformed(ctx context.Context, params domain.SearchParams, resp *domain.SearchResponse) {
	visitorID := logger.VisitorIDFromContext(ctx)
	data := SearchPerformedData{
		Query:      resp.Query,
		Filters:    resp.AppliedFilters,
		Sort:       params.Sort,
		Page:       resp.Page,
		TotalCount: resp.TotalCount,
		Status:     resp.Status,
		Reason:     resp.Reason,
		TookMs:     resp.TookMs,
		VisitorID:  visitorID,
	}

	aggregateID := visitorID
	if aggregateID == "" {
		aggregateID = "anonymous"
	}

	evt, err := pkgkafka.NewEvent(TypeSearchPerformed, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build search event", slog.String("error", err.Error()))
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	evt.WithMetadata("status", resp.Status)

	if err := p.producer.Publish(ctx, TopicSearchPerformed, evt); err != nil {
		p.logger.WarnContext(ctx, "failed to publish search event",
			slog.String("event_id", evt.EventID),
			slog.String("error", err.Error()),
		)
	}
}
