package resources

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// UnknownSupplyID centinela cuando el acuse no permite recuperar el ID.
	UnknownSupplyID = "unknown"

	supplyIDMarker = "ID:"
)

// ExtractSupplyID recupera el ID generado del acuse de POST /admin/supplies.
// Es el único punto acoplado al formato del acuse: primero intenta un campo "id"
// estructurado y, si no, busca el marcador literal "ID:" en el texto. Nunca falla.
func ExtractSupplyID(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return UnknownSupplyID
	}

	switch trimmed[0] {
	case '{':
		var ack struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(trimmed, &ack); err == nil && len(ack.ID) > 0 {
			if id := rawScalar(ack.ID); id != "" {
				return id
			}
		}
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			trimmed = []byte(s)
		}
	}

	text := string(trimmed)
	idx := strings.Index(text, supplyIDMarker)
	if idx < 0 {
		return UnknownSupplyID
	}
	rest := text[idx+len(supplyIDMarker):]
	if next := strings.Index(rest, supplyIDMarker); next >= 0 {
		rest = rest[:next]
	}
	if id := strings.TrimSpace(rest); id != "" {
		return id
	}
	return UnknownSupplyID
}

func rawScalar(raw json.RawMessage) string {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String()
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}
