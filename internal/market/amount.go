package market

import (
	"encoding/json"

	"github.com/VictorHenrique01/mini-mercado-hub/pkg/coerce"
)

// Amount is a numeric wire field tolerant of the shapes the backend has been
// observed to send: JSON numbers, numeric strings and null. Float is always
// finite; Valid reports whether the field was present and non-null.
type Amount struct {
	Float float64
	Valid bool
}

// Num builds a valid Amount, routing the value through coercion.
func Num(v float64) Amount {
	return Amount{Float: coerce.Float(v), Valid: true}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Float, a.Valid = 0, false

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		// Malformed numerics coerce to zero, same as every other
		// unusable value.
		return nil
	}
	if v == nil {
		return nil
	}

	a.Float = coerce.Float(v)
	a.Valid = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Float)
}
