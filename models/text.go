package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Text is a text field as accepted from clients or read from the
// collection. Strings are taken as is, numbers and booleans are kept as their
// literal text and null is "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	default:
		return fmt.Errorf("cannot use %s as text", describeJSON(c))
	}
	return nil
}

func describeJSON(c byte) string {
	switch c {
	case '{':
		return "an object"
	case '[':
		return "an array"
	}
	return "this value"
}

// UnmarshalBSONValue casts stored scalars the same way UnmarshalJSON does.
func (t *Text) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	v := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bsontype.String:
		*t = Text(v.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*t = ""
	case bsontype.Boolean:
		*t = Text(strconv.FormatBool(v.Boolean()))
	case bsontype.Int32:
		*t = Text(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Int64:
		*t = Text(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Double:
		*t = Text(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case bsontype.Decimal128:
		*t = Text(v.Decimal128().String())
	default:
		return fmt.Errorf("cannot decode %s as text", bt)
	}
	return nil
}
