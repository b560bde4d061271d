package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/vk/graphene/internal/fault"
	"github.com/zclconf/go-cty/cty"
)

// ID identifies a vertex. It is either an integer or a string and is
// comparable, so it can be used as a map key.
type ID struct {
	str   string
	num   int64
	isStr bool
}

// IntID returns an integer id.
func IntID(n int64) ID {
	return ID{num: n}
}

// StringID returns a string id.
func StringID(s string) ID {
	return ID{str: s, isStr: true}
}

// IsZero reports whether the id is the "no id" value: 0 or "".
func (id ID) IsZero() bool {
	if id.isStr {
		return id.str == ""
	}
	return id.num == 0
}

// IsString reports whether the id is a string id.
func (id ID) IsString() bool {
	return id.isStr
}

// Int returns the integer form of the id and whether it is an integer id.
func (id ID) Int() (int64, bool) {
	return id.num, !id.isStr
}

func (id ID) String() string {
	if id.isStr {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// Value returns the id as a cty value.
func (id ID) Value() cty.Value {
	if id.isStr {
		return cty.StringVal(id.str)
	}
	return cty.NumberIntVal(id.num)
}

// GoValue returns the id as a plain Go value (int64 or string).
func (id ID) GoValue() any {
	if id.isStr {
		return id.str
	}
	return id.num
}

// MarshalJSON encodes integer ids as JSON numbers and string ids as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isStr {
		return json.Marshal(id.str)
	}
	return []byte(strconv.FormatInt(id.num, 10)), nil
}

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID converts a raw id into an ID. It accepts integer kinds, integral
// floats, json.Number, strings, ID, *Vertex and cty values of type number or
// string. nil yields the zero ID.
func ParseID(raw any) (ID, error) {
	switch v := raw.(type) {
	case nil:
		return ID{}, nil
	case ID:
		return v, nil
	case *Vertex:
		if v == nil {
			return ID{}, nil
		}
		return v.id, nil
	case string:
		return StringID(v), nil
	case int:
		return IntID(int64(v)), nil
	case int8:
		return IntID(int64(v)), nil
	case int16:
		return IntID(int64(v)), nil
	case int32:
		return IntID(int64(v)), nil
	case int64:
		return IntID(v), nil
	case uint:
		return uintID(uint64(v))
	case uint8:
		return IntID(int64(v)), nil
	case uint16:
		return IntID(int64(v)), nil
	case uint32:
		return IntID(int64(v)), nil
	case uint64:
		return uintID(v)
	case float32:
		return floatID(float64(v))
	case float64:
		return floatID(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return IntID(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return ID{}, fmt.Errorf("%w: id %q is not a number", fault.ErrInvalidValue, v.String())
		}
		return floatID(f)
	case cty.Value:
		return ctyID(v)
	default:
		return ID{}, fmt.Errorf("%w: unsupported id type %T", fault.ErrInvalidValue, raw)
	}
}

// MustParseID is like ParseID but panics on error. It is meant for literals
// in tests and examples.
func MustParseID(raw any) ID {
	id, err := ParseID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func uintID(v uint64) (ID, error) {
	if v > math.MaxInt64 {
		return ID{}, fmt.Errorf("%w: id %d overflows int64", fault.ErrInvalidValue, v)
	}
	return IntID(int64(v)), nil
}

func floatID(f float64) (ID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return ID{}, fmt.Errorf("%w: id %v is not an integer", fault.ErrInvalidValue, f)
	}
	return IntID(int64(f)), nil
}

func ctyID(v cty.Value) (ID, error) {
	if v.IsNull() {
		return ID{}, nil
	}
	if !v.IsKnown() {
		return ID{}, fmt.Errorf("%w: id is unknown", fault.ErrInvalidValue)
	}
	switch {
	case v.Type().Equals(cty.String):
		return StringID(v.AsString()), nil
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return ID{}, fmt.Errorf("%w: id %s is not an integer", fault.ErrInvalidValue, bf.String())
		}
		n, acc := bf.Int64()
		if acc != big.Exact {
			return ID{}, fmt.Errorf("%w: id %s overflows int64", fault.ErrInvalidValue, bf.String())
		}
		return IntID(n), nil
	default:
		return ID{}, fmt.Errorf("%w: id of type %s", fault.ErrInvalidValue, v.Type().FriendlyName())
	}
}
