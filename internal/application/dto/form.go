package dto

import (
	"bytes"
	"encoding/json"
)

// FormValue valor tal como lo escribe el usuario en un campo numérico del formulario.
// Acepta string, número o null en JSON; el parseo numérico se hace en el gateway.
type FormValue string

// UnmarshalJSON acepta "12", 12 y null.
func (f *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormValue(s)
		return nil
	}
	*f = FormValue(b)
	return nil
}
