package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrUnknownEvent = errors.New("unknown event")
)

// Frame 待写出的一条 WebSocket 消息
type Frame struct {
	Binary bool
	Data   []byte
}

// binaryEnvelope msgpack 帧的外层结构，字段名与 JSON 一致
type binaryEnvelope struct {
	Event string `msgpack:"event"`
	Data  any    `msgpack:"data"`
}

func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("encode: %w", ErrUnknownEvent)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: pb})
}

// EncodeFrame 按会话协商的编码生成文本帧或二进制帧
func EncodeFrame(enc Encoding, event string, payload any) (Frame, error) {
	if enc == EncodingMsgpack {
		b, err := msgpack.Marshal(&binaryEnvelope{Event: event, Data: payload})
		if err != nil {
			return Frame{}, fmt.Errorf("msgpack %s: %w", event, err)
		}
		return Frame{Binary: true, Data: b}, nil
	}
	b, err := Encode(event, payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Data: b}, nil
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload 解出 data 字段；init 允许不带 data，调用方自行判断
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("empty payload for %q", env.Event)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.Event, err)
	}
	return out, nil
}
