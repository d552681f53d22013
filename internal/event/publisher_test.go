package event

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	pkgkafka "github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/kafka"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/logger"
)

type recordingProducer struct {
	topic  string
	events []*pkgkafka.Event
	err    error
}

func (r *recordingProducer) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	r.topic = topic
	r.events = append(r.events, e)
	return r.err
}

func TestPublisher_SearchPerformed(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewPublisher(prod, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	inStock := true
	ctx := logger.WithVisitorID(logger.WithCorrelationID(context.Background(), "corr-1"), "visitor-9")
	resp := &domain.SearchResponse{
		Query:          "bague or",
		AppliedFilters: domain.SearchFilters{InStock: &inStock},
		Page:           2,
		TotalCount:     31,
		Status:         domain.StatusOK,
		TookMs:         4,
	}

	pub.SearchPerformed(ctx, domain.SearchParams{Sort: domain.SortPriceAsc}, resp)

	require.Len(t, prod.events, 1)
	assert.Equal(t, TopicSearchPerformed, prod.topic)

	evt := prod.events[0]
	assert.Equal(t, TypeSearchPerformed, evt.EventType)
	assert.Equal(t, "visitor-9", evt.AggregateID)
	assert.Equal(t, "corr-1", evt.CorrelationID)
	assert.Equal(t, domain.StatusOK, evt.Metadata["status"])

	var data SearchPerformedData
	require.NoError(t, evt.UnmarshalData(&data))
	assert.Equal(t, "bague or", data.Query)
	assert.Equal(t, domain.SortPriceAsc, data.Sort)
	assert.Equal(t, 31, data.TotalCount)
	assert.Equal(t, 2, data.Page)
	require.NotNil(t, data.Filters.InStock)
	assert.True(t, *data.Filters.InStock)
}

func TestPublisher_AnonymousVisitor(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewPublisher(prod, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	pub.SearchPerformed(context.Background(), domain.SearchParams{}, &domain.SearchResponse{Status: domain.StatusDegraded, Reason: "fetch products: timeout"})

	require.Len(t, prod.events, 1)
	assert.Equal(t, "anonymous", prod.events[0].AggregateID)
	assert.Empty(t, prod.events[0].CorrelationID)

	var data SearchPerformedData
	require.NoError(t, prod.events[0].UnmarshalData(&data))
	assert.Equal(t, domain.StatusDegraded, data.Status)
	assert.Equal(t, "fetch products: timeout", data.Reason)
}

func TestPublisher_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prod := &recordingProducer{err: errors.New("broker down")}
	pub := NewPublisher(prod, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.NotPanics(t, func() {
		pub.SearchPerformed(context.Background(), domain.SearchParams{}, &domain.SearchResponse{})
	})
	assert.Contains(t, buf.String(), "failed to publish search event")
	assert.Contains(t, buf.String(), "broker down")
}
