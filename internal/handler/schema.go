package handler

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// inputSchema reflects an arguments struct into the JSON schema the
// tool advertises to the host. The root struct is expanded in place so
// the host receives a single self-contained object schema instead of a
// $defs reference.
func inputSchema(v any) json.RawMessage {
	r := new(jsonschema.Reflector)
	r.ExpandedStruct = true
	r.DoNotReference = true

	raw, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic(err)
	}
	return raw
}
