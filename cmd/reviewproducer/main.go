package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

func main() {
	var (
		broker   string
		topic    string
		fileName string
	)
	flag.StringVar(&broker, "broker", "localhost:9092", "Kafka bootstrap server")
	flag.StringVar(&topic, "topic", "reviews", "Topic to produce review events to")
	flag.StringVar(&fileName, "file", "reviewsdata.json", "JSON file with review events")
	flag.Parse()

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": broker,
	})
	if err != nil {
		log.Fatalf("cannot create producer: %v", err)
	}
	defer producer.Close()

	go func() {
		for e := range producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					log.Printf("delivery failed: %v", ev.TopicPartition)
				}
			}
		}
	}()

	log.Printf("reading review events from %s", fileName)
	reviewEvents, err := readReviewEvents(fileName)
	if err != nil {
		log.Fatalf("cannot read events: %v", err)
	}

	if err := produceReviewEvents(topic, producer, reviewEvents); err != nil {
		log.Fatalf("cannot produce events: %v", err)
	}

	remaining := producer.Flush(10_000)
	if remaining != 0 {
		log.Fatalf("still %d messages not delivered", remaining)
	}
	log.Println("all events produced")
}

func readReviewEvents(fileName string) ([]model.ReviewEvent, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []model.ReviewEvent
	if err := json.NewDecoder(f).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

func produceReviewEvents(topic string, producer *kafka.Producer, events []model.ReviewEvent) error {
	for _, re := range events {
		payload, err := json.Marshal(re)
		if err != nil {
			return err
		}
		if err := producer.Produce(&kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Value:          payload,
		}, nil); err != nil {
			return err
		}
	}
	return nil
}
