package display

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/lock-indication/internal/indication"
)

// RealSink publishes the indication state to an MQTT broker. The three sink
// methods update a cached state and republish the whole retained payload, so
// the renderer never depends on partial updates. Publish failures are logged
// and swallowed; the retained republish on reconnect repairs any gap.
type RealSink struct {
	client paho.Client

	mu    sync.Mutex
	state State

	commands chan Command
}

// NewRealSink connects to the broker and subscribes to the command topic.
func NewRealSink(broker string) (*RealSink, error) {
	s := &RealSink{commands: make(chan Command, 16)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("lock-indication").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(s.onConnect)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	s.client = client
	return s, nil
}

// SwitchIndication publishes the new text.
func (s *RealSink) SwitchIndication(text string) {
	s.mu.Lock()
	s.state.Text = text
	st := s.state
	s.mu.Unlock()
	s.publishState(st)
}

// SetTextColor publishes the new color.
func (s *RealSink) SetTextColor(c indication.Color) {
	s.mu.Lock()
	s.state.Color = c
	st := s.state
	s.mu.Unlock()
	s.publishState(st)
}

// SetVisibility publishes the new visibility.
func (s *RealSink) SetVisibility(visible bool) {
	s.mu.Lock()
	s.state.Visible = visible
	st := s.state
	s.mu.Unlock()
	s.publishState(st)
}

// Commands returns the remote command channel.
func (s *RealSink) Commands() <-chan Command {
	return s.commands
}

// PublishSystem sends a lifecycle event. QoS 1 so shutdown events survive a
// flaky link.
func (s *RealSink) PublishSystem(ev SystemEvent) error {
	payload, err := FormatSystemPayload(ev)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	token := s.client.Publish(TopicSystem, 1, ev.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (s *RealSink) IsConnected() bool {
	return s.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (s *RealSink) Close() error {
	s.client.Disconnect(1000)
	return nil
}

// publishState pushes the retained state payload. QoS 0: the next update
// supersedes a lost one, and the retained flag covers late subscribers.
func (s *RealSink) publishState(st State) {
	payload, err := FormatStatePayload(st, time.Now())
	if err != nil {
		log.Printf("display: format state: %v", err)
		return
	}
	token := s.client.Publish(Topic, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("display: publish timeout")
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("display: publish: %v", err)
	}
}

// onConnect runs on every (re)connect: re-subscribe to commands and republish
// the current state so a broker restart cannot leave a stale retained value.
func (s *RealSink) onConnect(client paho.Client) {
	token := client.Subscribe(TopicCommands, 1, s.handleCommand)
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("display: subscribe timeout on %s", TopicCommands)
	} else if err := token.Error(); err != nil {
		log.Printf("display: subscribe %s: %v", TopicCommands, err)
	}

	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	s.publishState(st)
}

func (s *RealSink) handleCommand(_ paho.Client, msg paho.Message) {
	cmd, err := ParseCommand(msg.Payload())
	if err != nil {
		log.Printf("display: bad command on %s: %v", msg.Topic(), err)
		return
	}
	select {
	case s.commands <- cmd:
	default:
		log.Printf("display: command queue full, dropping %s", cmd.Action)
	}
}
