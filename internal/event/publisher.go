package event

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys published by the service.
const (
	FresherProvisioned  = "fresher.provisioned"
	DailyProblemSolved  = "daily.problem.submitted"
	DailyQuizSubmitted  = "daily.quiz.submitted"
	AssessmentCompleted = "assessment.completed"
	CertificateIssued   = "certificate.issued"
	MembershipChanged   = "department.membership_changed"
	CourseFinished      = "course.finished"
	CourseBulkAssigned  = "course.bulk_assigned"
)

type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logFile  string
}

func NewPublisher(amqpURL, exchange, logFile string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, logFile: logFile}, nil
}

// Publish emits a domain event using the event type as the routing key.
func (p *Publisher) Publish(eventType string, payload interface{}) error {
	event := map[string]interface{}{
		"type":       eventType,
		"payload":    payload,
		"emitted_at": time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	fmt.Printf("[EVENT] %s: %v\n", eventType, payload)
	if p.logFile != "" {
		f, ferr := os.OpenFile(p.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if ferr == nil {
			defer f.Close()
			f.WriteString(fmt.Sprintf("[EVENT] %s: %v\n", eventType, payload))
		}
	}

	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
