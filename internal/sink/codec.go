package sink

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
)

// eventStream is the serialized form of a recorded document
type eventStream struct {
	Format string  `json:"format" msgpack:"format"`
	Events []Event `json:"events" msgpack:"events"`
}

// StreamFormat tags serialized event streams
const StreamFormat = "fbreport.events/v1"

// EncodeJSON writes events as an indented JSON document.
func EncodeJSON(w io.Writer, events []Event) error {
	data, err := json.MarshalIndent(eventStream{Format: StreamFormat, Events: events}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DecodeJSON reads a stream written by EncodeJSON.
func DecodeJSON(r io.Reader) ([]Event, error) {
	var stream eventStream
	if err := json.NewDecoder(r).Decode(&stream); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return checkStream(stream)
}

// EncodeMsgpack writes events in msgpack form.
func EncodeMsgpack(w io.Writer, events []Event) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(eventStream{Format: StreamFormat, Events: events}); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return nil
}

// DecodeMsgpack reads a stream written by EncodeMsgpack.
func DecodeMsgpack(r io.Reader) ([]Event, error) {
	var stream eventStream
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&stream); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return checkStream(stream)
}

func checkStream(stream eventStream) ([]Event, error) {
	if stream.Format != StreamFormat {
		return nil, fmt.Errorf("unsupported event stream format %q", stream.Format)
	}
	return stream.Events, nil
}
