package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const CirculationTopic = "circulation-events"

type Action string

const (
	ActionIssued   Action = "issued"
	ActionReturned Action = "returned"
	ActionReminded Action = "reminded"
)

// EventCirculation is published after every successful circulation state
// change for downstream reporting.
type EventCirculation struct {
	LoanUid    string    `json:"loanUid"`
	BookID     int       `json:"bookId"`
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

// Publish marshals v and sends it synchronously to topic.
func Publish(producer sarama.SyncProducer, topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
