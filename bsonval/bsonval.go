// Package bsonval converts between BSON documents and the toon value model.
//
// BSON types without a JSON counterpart are flattened to strings: object ids to
// their hex form, dates to RFC 3339 in UTC, binary data to base64, decimals and
// regular expressions to their textual form. Timestamps become {t, i} objects.
package bsonval

import (
	"encoding/base64"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/paularlott/toon"
)

// FromRaw converts a BSON document into a toon Object, keeping element order.
func FromRaw(raw bson.Raw) (toon.Value, error) {
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("bsonval: invalid document: %w", err)
	}
	return fromDocument(raw, 1)
}

// FromD converts an ordered bson.D into a toon Object.
func FromD(d bson.D) (toon.Value, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("bsonval: %w", err)
	}
	return FromRaw(raw)
}

// FromExtJSON reads MongoDB Extended JSON, canonical or relaxed, into a toon Object.
func FromExtJSON(data []byte, canonical bool) (toon.Value, error) {
	var raw bson.Raw
	if err := bson.UnmarshalExtJSON(data, canonical, &raw); err != nil {
		return nil, fmt.Errorf("bsonval: %w", err)
	}
	return FromRaw(raw)
}

func fromDocument(raw bson.Raw, depth int) (toon.Value, error) {
	if depth > toon.MaxDepth {
		return nil, fmt.Errorf("bsonval: maximum nesting depth of %d exceeded", toon.MaxDepth)
	}

	elems, err := raw.Elements()
	if err != nil {
		return nil, fmt.Errorf("bsonval: %w", err)
	}
	obj := make(toon.Object, 0, len(elems))
	for _, elem := range elems {
		v, err := fromRawValue(elem.Value(), depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", elem.Key(), err)
		}
		obj.Set(elem.Key(), v)
	}
	return obj, nil
}

func fromArray(raw bson.Raw, depth int) (toon.Value, error) {
	if depth > toon.MaxDepth {
		return nil, fmt.Errorf("bsonval: maximum nesting depth of %d exceeded", toon.MaxDepth)
	}

	vals, err := raw.Values()
	if err != nil {
		return nil, fmt.Errorf("bsonval: %w", err)
	}
	arr := make(toon.Array, len(vals))
	for i, rv := range vals {
		v, err := fromRawValue(rv, depth)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		arr[i] = v
	}
	return arr, nil
}

// fromRawValue converts one element value; depth is that of the enclosing container.
func fromRawValue(rv bson.RawValue, depth int) (toon.Value, error) {
	switch rv.Type {
	case bsontype.Double:
		return toon.Float(rv.Double()), nil
	case bsontype.String:
		return toon.String(rv.StringValue()), nil
	case bsontype.EmbeddedDocument:
		return fromDocument(rv.Document(), depth+1)
	case bsontype.Array:
		return fromArray(rv.Array(), depth+1)
	case bsontype.Binary:
		_, data := rv.Binary()
		return toon.String(base64.StdEncoding.EncodeToString(data)), nil
	case bsontype.Undefined, bsontype.Null:
		return toon.Null{}, nil
	case bsontype.ObjectID:
		return toon.String(rv.ObjectID().Hex()), nil
	case bsontype.Boolean:
		return toon.Bool(rv.Boolean()), nil
	case bsontype.DateTime:
		return toon.String(formatDateTime(rv.DateTime())), nil
	case bsontype.Regex:
		pattern, options := rv.Regex()
		return toon.String("/" + pattern + "/" + options), nil
	case bsontype.DBPointer:
		ns, oid := rv.DBPointer()
		return toon.String(ns + "." + oid.Hex()), nil
	case bsontype.JavaScript:
		return toon.String(rv.JavaScript()), nil
	case bsontype.Symbol:
		return toon.String(rv.Symbol()), nil
	case bsontype.CodeWithScope:
		code, _ := rv.CodeWithScope()
		return toon.String(code), nil
	case bsontype.Int32:
		return toon.Int(rv.Int32()), nil
	case bsontype.Timestamp:
		t, i := rv.Timestamp()
		return toon.Object{
			{Key: "t", Value: toon.Int(t)},
			{Key: "i", Value: toon.Int(i)},
		}, nil
	case bsontype.Int64:
		return toon.Int(rv.Int64()), nil
	case bsontype.Decimal128:
		return toon.String(rv.Decimal128().String()), nil
	case bsontype.MinKey:
		return toon.String("MinKey"), nil
	case bsontype.MaxKey:
		return toon.String("MaxKey"), nil
	}
	return nil, fmt.Errorf("bsonval: unsupported BSON type %s", rv.Type)
}

func formatDateTime(ms int64) string {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC().Format(time.RFC3339Nano)
}

// ToD converts a toon Object into an ordered bson.D.
func ToD(v toon.Value) (bson.D, error) {
	obj, ok := v.(toon.Object)
	if !ok {
		return nil, fmt.Errorf("bsonval: a BSON document needs an object, found %s", kindOf(v))
	}
	out, err := toBSON(obj, 1)
	if err != nil {
		return nil, err
	}
	return out.(bson.D), nil
}

// Marshal encodes a toon Object as a BSON document.
func Marshal(v toon.Value) ([]byte, error) {
	d, err := ToD(v)
	if err != nil {
		return nil, err
	}
	data, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("bsonval: %w", err)
	}
	return data, nil
}

func toBSON(v toon.Value, depth int) (interface{}, error) {
	switch val := v.(type) {
	case nil, toon.Null:
		return nil, nil
	case toon.Bool:
		return bool(val), nil
	case toon.Int:
		return int64(val), nil
	case toon.Float:
		return float64(val), nil
	case toon.String:
		return string(val), nil
	case toon.Array:
		if depth > toon.MaxDepth {
			return nil, fmt.Errorf("bsonval: maximum nesting depth of %d exceeded", toon.MaxDepth)
		}
		a := make(bson.A, len(val))
		for i, item := range val {
			b, err := toBSON(item, depth+1)
			if err != nil {
				return nil, err
			}
			a[i] = b
		}
		return a, nil
	case toon.Object:
		if depth > toon.MaxDepth {
			return nil, fmt.Errorf("bsonval: maximum nesting depth of %d exceeded", toon.MaxDepth)
		}
		d := make(bson.D, 0, len(val))
		for _, m := range val {
			b, err := toBSON(m.Value, depth+1)
			if err != nil {
				return nil, err
			}
			d = append(d, bson.E{Key: m.Key, Value: b})
		}
		return d, nil
	}
	return nil, fmt.Errorf("bsonval: unsupported value %T", v)
}

func kindOf(v toon.Value) toon.Kind {
	if v == nil {
		return toon.NullKind
	}
	return v.Kind()
}
