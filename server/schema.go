package server

import (
	"net/http"
	"reflect"

	"github.com/invopop/jsonschema"
)

// protocolMessages 每个消息名对应的 data 类型
var protocolMessages = []struct {
	event       string
	direction   string
	description string
	typ         reflect.Type
}{
	{EventInit, "client", "Handshake; starts (or restarts) the simulation.", reflect.TypeOf(InitConfig{})},
	{EventKeyDown, "client", "Key pressed; data is the raw key code.", reflect.TypeOf(0)},
	{EventKeyUp, "client", "Key released; data is the raw key code.", reflect.TypeOf(0)},
	{EventKeysPress, "client", "Batched key records applied in order.", reflect.TypeOf([]KeyRecord{})},
	{EventInitialized, "server", "Session identity and tick interval.", reflect.TypeOf(Initialized{})},
	{EventCompute, "server", "Per-tick state snapshot.", reflect.TypeOf(Snapshot{})},
}

// ProtocolSchema 生成 WebSocket 消息的 JSON Schema
func ProtocolSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	variants := make([]*jsonschema.Schema, 0, len(protocolMessages))
	for _, m := range protocolMessages {
		data := reflector.ReflectFromType(m.typ)
		data.Version = ""
		data.Title = m.event
		data.Description = m.description + " (" + m.direction + " -> " + peer(m.direction) + ")"
		variants = append(variants, data)
	}
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "rcb websocket protocol",
		Description: `Text frames are {"event": name, "data": payload}; compute frames are msgpack when negotiated.`,
		OneOf:       variants,
	}
}

func peer(direction string) string {
	if direction == "client" {
		return "server"
	}
	return "client"
}

// HandleSchema GET /protocol/schema
func (s *Server) HandleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProtocolSchema())
}
