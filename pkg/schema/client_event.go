package schema

import "github.com/hamba/avro/v2"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "cakeshop",
	"name": "client_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "unix_ms", "type": "long"}
	]
}`

type ClientEventV1 struct {
	EventID     string `avro:"event_id"`
	EventType   string `avro:"event_type"`
	ProductID   string `avro:"product_id"`
	ProductName string `avro:"product_name"`
	Category    string `avro:"category"`
	Query       string `avro:"query"`
	Quantity    int64  `avro:"quantity"`
	UnixMs      int64  `avro:"unix_ms"`
}

// ClientEventV1Avro panics on an invalid schema text, which is a
// develop mistake.
func ClientEventV1Avro() avro.Schema {
	return avro.MustParse(ClientEventSchemaTextV1)
}
