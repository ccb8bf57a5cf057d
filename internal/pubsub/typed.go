package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// EventInfo documents a registered event topic.
type EventInfo struct {
	Name          string
	Module        string
	Description   string
	PayloadType   string
	PayloadFields []string
}

var (
	eventsMu sync.RWMutex
	events   = map[string]EventInfo{}
)

// Event[T] wraps a topic name and provides type-safe publishing.
type Event[T any] struct {
	topicName string
}

// NewEvent creates a typed event and records it in the event catalog.
// Payload fields are taken from the json tags of T. Defining the same topic
// twice panics, since events are declared at package level.
func NewEvent[T any](name string, description string) Event[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make([]string, 0)
	typeName := ""
	if t != nil {
		typeName = t.Name()
		if t.Kind() == reflect.Struct {
			for i := 0; i < t.NumField(); i++ {
				tag := t.Field(i).Tag.Get("json")
				if tag == "" || tag == "-" {
					continue
				}
				fieldName, _, _ := strings.Cut(tag, ",")
				fields = append(fields, fieldName)
			}
		}
	}

	module, _, _ := strings.Cut(name, ".")

	eventsMu.Lock()
	defer eventsMu.Unlock()
	if _, exists := events[name]; exists {
		panic(fmt.Sprintf("pubsub: event %q registered twice", name))
	}
	events[name] = EventInfo{
		Name:          name,
		Module:        module,
		Description:   description,
		PayloadType:   typeName,
		PayloadFields: fields,
	}

	return Event[T]{topicName: name}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Decode unmarshals a message payload into T.
func (e Event[T]) Decode(msg Message) (T, error) {
	var payload T
	if msg.Topic != "" && msg.Topic != e.topicName {
		return payload, fmt.Errorf("decode %s: message is for topic %s", e.topicName, msg.Topic)
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s: %w", e.topicName, err)
	}
	return payload, nil
}

// Events lists every registered event, sorted by name.
func Events() []EventInfo {
	eventsMu.RLock()
	defer eventsMu.RUnlock()

	out := make([]EventInfo, 0, len(events))
	for _, info := range events {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Publish sends a typed event. The compiler ensures payload matches T.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], gameID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		GameID:  gameID,
		Payload: data,
	})
}

// Subscribe registers a typed handler for event. Messages whose payload does
// not decode are logged by the bus and skipped.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		payload, err := event.Decode(msg)
		if err != nil {
			return err
		}
		return handler(ctx, payload)
	})
}
