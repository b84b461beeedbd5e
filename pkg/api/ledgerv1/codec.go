// Package ledgerv1 holds the request and response messages of the finledger
// v1 RPC surface.
//
// Messages are plain Go structs carried as JSON. Amounts are decimal strings
// ("1234.50"), calendar dates are "2006-01-02" strings and instants are
// RFC 3339 timestamps.
package ledgerv1

import "encoding/json"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Codec is a Connect codec for the messages of this package. It replaces
// Connect's protobuf-only JSON codec under the same name, so clients and
// handlers speak application/json.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body leaves msg zero-valued.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
