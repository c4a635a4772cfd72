package resources

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Los formularios numéricos se interpretan como lo haría un campo de navegador:
// se toma el prefijo numérico ("12abc" -> 12) y lo que no tiene prefijo numérico queda sin valor
// (se envía null). No se rechaza nada antes de enviar: el servidor decide.
var (
	floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefixRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseFloatField devuelve nil si el texto no empieza por un número.
func parseFloatField(s string) *float64 {
	m := floatPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// parseIntField devuelve nil si el texto no empieza por un entero o si desborda int64.
func parseIntField(s string) *int64 {
	m := intPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
