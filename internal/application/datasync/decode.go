package datasync

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// decodeSequence exige que el cuerpo sea un arreglo JSON. Cualquier otra forma
// (objeto, null, texto, arreglo con elementos incompatibles) es ErrMalformedPayload.
func decodeSequence[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: se esperaba un arreglo", domain.ErrMalformedPayload)
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// DecodeStats decodifica la respuesta de /admin/warehouses/stats.
func DecodeStats(raw []byte) ([]entity.WarehouseStat, error) {
	return decodeSequence[entity.WarehouseStat](raw)
}
