package store

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes domain documents to the bytes a backend persists.
// Implementations must be stateless and safe for concurrent use.
type Codec interface {
	// Name identifies the codec in configuration ("json", "msgpack").
	Name() string
	Marshal(doc any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

// JSONCodec encodes documents as indented JSON. It is the default codec:
// artifacts on disk stay diffable and other tooling (site builders,
// documentation renderers) can read them directly.
type JSONCodec struct{}

// Name returns "json".
func (JSONCodec) Name() string { return "json" }

// Marshal encodes doc as indented JSON.
func (JSONCodec) Marshal(doc any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes JSON data into out.
func (JSONCodec) Unmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// MsgpackCodec encodes documents as MessagePack. Suited to ephemeral
// high-churn stores (evaluation parameters) where compactness matters more
// than human readability.
type MsgpackCodec struct{}

// Name returns "msgpack".
func (MsgpackCodec) Name() string { return "msgpack" }

// Marshal encodes doc as MessagePack.
func (MsgpackCodec) Marshal(doc any) ([]byte, error) {
	return msgpack.Marshal(doc)
}

// Unmarshal decodes MessagePack data into out.
func (MsgpackCodec) Unmarshal(data []byte, out any) error {
	return msgpack.Unmarshal(data, out)
}

// CodecByName returns the codec registered under name, defaulting to JSON
// for the empty string. The variant set is closed; unknown names return
// false.
func CodecByName(name string) (Codec, bool) {
	switch name {
	case "", "json":
		return JSONCodec{}, true
	case "msgpack":
		return MsgpackCodec{}, true
	default:
		return nil, false
	}
}
