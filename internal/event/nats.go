package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// SubjectPublisher is the subset of *nats.Conn the forwarder uses
type SubjectPublisher interface {
	Publish(subject string, data []byte) error
}

// NATSForwarder republishes bus events as JSON on NATS subjects
// chatdispatch.events.<type> for out-of-process consumers (overlays, stats).
type NATSForwarder struct {
	pub SubjectPublisher
}

// NewNATSForwarder creates a forwarder writing through pub
func NewNATSForwarder(pub SubjectPublisher) *NATSForwarder {
	return &NATSForwarder{pub: pub}
}

// ConnectNATS dials the NATS server with reconnect handling
func ConnectNATS(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(NATSClientName),
		nats.MaxReconnects(NATSMaxReconnects),
		nats.ReconnectWait(NATSReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn(LogMsgNATSDisconnected, "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(LogMsgNATSReconnected, "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgNATSConnectFailed, err)
	}
	logger.Info(LogMsgNATSConnected, "url", url)
	return nc, nil
}

// Subject returns the NATS subject for an event type
func Subject(t Type) string {
	return NATSSubjectPrefix + string(t)
}

// Register subscribes the forwarder to every dispatcher event type
func (f *NATSForwarder) Register(bus Bus) {
	for _, t := range AllTypes() {
		bus.Subscribe(t, f.Forward)
	}
}

// Forward encodes evt and publishes it
func (f *NATSForwarder) Forward(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeEventFailed, err)
	}
	subject := Subject(evt.Type)
	if err := f.pub.Publish(subject, data); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNATSForwardFailed, "subject", subject, "error", err)
		return fmt.Errorf(ErrMsgNATSPublishFailed, subject, err)
	}
	return nil
}
