//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"checkpoint/internal/activity"
	"checkpoint/internal/activity/kafka"
	id "checkpoint/pkg/domain"
	"checkpoint/pkg/testutil/containers"
)

type SinkSuite struct {
	suite.Suite
	kafka *containers.KafkaContainer
}

func TestSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SinkSuite))
}

func (s *SinkSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())
}

func (s *SinkSuite) TestProduceAndConsume() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "activity-test"
	sink, err := kafka.New(s.kafka.Brokers, topic)
	s.Require().NoError(err)
	defer sink.Close()

	s.Require().NoError(sink.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(sink.EnsureTopic(ctx, 1, 1), "existing topic is not an error")

	auditID := id.NewAuditID()
	s.Require().NoError(sink.Append(ctx, activity.Event{
		ID:            "evt-1",
		Action:        activity.ActionResultSaved,
		AuditID:       auditID,
		RequirementID: "r1",
		Outcome:       id.OutcomeConforming,
		Timestamp:     time.Now().UTC(),
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.kafka.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())

	var got []activity.Event
	fetches.EachRecord(func(r *kgo.Record) {
		var e activity.Event
		s.Require().NoError(json.Unmarshal(r.Value, &e))
		s.Equal(auditID.String(), string(r.Key))
		got = append(got, e)
	})
	s.Require().Len(got, 1)
	s.Equal(activity.ActionResultSaved, got[0].Action)
}
