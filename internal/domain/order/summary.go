package order

import (
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap/zapcore"

	"github.com/xenking/starbuzz/internal/domain/beverage"
)

// Summary is a read-only snapshot of a finished order.
type Summary struct {
	ID          string
	Beverage    beverage.Kind
	Condiments  []beverage.Condiment
	Description string
	Total       string
	CreatedAt   time.Time
}

// Summary snapshots the order as it stands now.
func (o *Order) Summary() Summary {
	return Summary{
		ID:          o.ID.String(),
		Beverage:    beverage.BaseOf(o.Item),
		Condiments:  beverage.Condiments(o.Item),
		Description: o.Description(),
		Total:       o.Total().String(),
		CreatedAt:   o.CreatedAt,
	}
}

// Encode writes s as a JSON object.
func (s Summary) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(s.ID)
	e.FieldStart("beverage")
	e.Str(s.Beverage.String())
	e.FieldStart("condiments")
	e.ArrStart()
	for _, c := range s.Condiments {
		e.Str(c.String())
	}
	e.ArrEnd()
	e.FieldStart("description")
	e.Str(s.Description)
	e.FieldStart("total")
	e.Str(s.Total)
	e.FieldStart("created_at")
	e.Str(s.CreatedAt.UTC().Format(time.RFC3339Nano))
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (s Summary) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", s.ID)
	enc.AddString("beverage", s.Beverage.String())
	if err := enc.AddArray("condiments", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, c := range s.Condiments {
			arr.AppendString(c.String())
		}
		return nil
	})); err != nil {
		return err
	}
	enc.AddString("description", s.Description)
	enc.AddString("total", s.Total)
	enc.AddTime("created_at", s.CreatedAt)
	return nil
}
