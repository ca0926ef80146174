package natsstan

import (
	"encoding/json"
	"fmt"
	"time"

	stan "github.com/nats-io/stan.go"

	"github.com/example/shipment-label-service/internal/domain"
)

// Publisher публикует события выпуска накладной в NATS Streaming.
type Publisher struct {
	sc      stan.Conn
	subject string
}

func Connect(clusterID, clientID, url, subject string) (*Publisher, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("shiplabel-svc-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(url))
	if err != nil {
		return nil, err
	}
	return &Publisher{sc: sc, subject: subject}, nil
}

func (p *Publisher) PublishLabelCreated(e domain.LabelCreatedEvent) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.sc.Publish(p.subject, b)
}

func (p *Publisher) Close() error {
	return p.sc.Close()
}

var _ domain.LabelEventPublisher = (*Publisher)(nil)
