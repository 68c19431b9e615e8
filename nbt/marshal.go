package nbt

import (
	"errors"
	"io"
	"math"
	"reflect"
)

// Marshal writes v as an unnamed root tag.
func Marshal(w io.Writer, v interface{}) error {
	return NewEncoder(w).Encode(v)
}

// Encoder writes NBT to an uncompressed stream. Structs and string-keyed maps become compounds; a struct field
// is named by its `nbt` tag or, without one, by the field name. Fields tagged "-" are skipped.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(v interface{}) error {
	return e.marshal(reflect.ValueOf(v), "")
}

func (e *Encoder) marshal(val reflect.Value, tagName string) error {
	switch vk := val.Kind(); vk {
	default:
		return errors.New("nbt: cannot encode " + vk.String() + " for tag " + tagName)

	case reflect.Bool:
		if err := e.writeTag(TagByte, tagName); err != nil {
			return err
		}
		var b byte
		if val.Bool() {
			b = 1
		}
		_, err := e.w.Write([]byte{b})
		return err

	case reflect.Int8, reflect.Uint8:
		if err := e.writeTag(TagByte, tagName); err != nil {
			return err
		}
		_, err := e.w.Write([]byte{byte(integer(val))})
		return err

	case reflect.Int16, reflect.Uint16:
		if err := e.writeTag(TagShort, tagName); err != nil {
			return err
		}
		return e.writeInt16(int16(integer(val)))

	case reflect.Int, reflect.Int32, reflect.Uint32:
		if err := e.writeTag(TagInt, tagName); err != nil {
			return err
		}
		return e.writeInt32(int32(integer(val)))

	case reflect.Int64, reflect.Uint64:
		if err := e.writeTag(TagLong, tagName); err != nil {
			return err
		}
		return e.writeInt64(integer(val))

	case reflect.Float32:
		if err := e.writeTag(TagFloat, tagName); err != nil {
			return err
		}
		return e.writeInt32(int32(math.Float32bits(float32(val.Float()))))

	case reflect.Float64:
		if err := e.writeTag(TagDouble, tagName); err != nil {
			return err
		}
		return e.writeInt64(int64(math.Float64bits(val.Float())))

	case reflect.String:
		if err := e.writeTag(TagString, tagName); err != nil {
			return err
		}
		return e.writeString(val.String())

	case reflect.Array, reflect.Slice:
		return e.marshalArray(val, tagName, val.Type().Elem().Kind())

	case reflect.Struct:
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalStruct(val)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.New("nbt: map key type " + val.Type().Key().String() + " is not a string")
		}
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalMap(val)

	case reflect.Interface, reflect.Ptr:
		if val.IsNil() {
			return errors.New("nbt: nil value for tag " + tagName)
		}
		return e.marshal(val.Elem(), tagName)
	}
}

func (e *Encoder) marshalArray(val reflect.Value, tagName string, elementKind reflect.Kind) error {
	n := val.Len()
	switch elementKind {
	case reflect.Uint8, reflect.Int8:
		if err := e.writeTag(TagByteArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		raw := make([]byte, n)
		for i := 0; i < n; i++ {
			raw[i] = byte(integer(val.Index(i)))
		}
		_, err := e.w.Write(raw)
		return err

	case reflect.Int, reflect.Int32:
		if err := e.writeTag(TagIntArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt32(int32(val.Index(i).Int())); err != nil {
				return err
			}
		}
		return nil

	case reflect.Int64:
		if err := e.writeTag(TagLongArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt64(val.Index(i).Int()); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct, reflect.Map:
		if err := e.writeListHeader(tagName, TagCompound, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			var err error
			if elementKind == reflect.Struct {
				err = e.marshalStruct(val.Index(i))
			} else {
				err = e.marshalMap(val.Index(i))
			}
			if err != nil {
				return err
			}
		}
		return nil

	case reflect.Float32:
		if err := e.writeListHeader(tagName, TagFloat, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt32(int32(math.Float32bits(float32(val.Index(i).Float())))); err != nil {
				return err
			}
		}
		return nil

	case reflect.Float64:
		if err := e.writeListHeader(tagName, TagDouble, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt64(int64(math.Float64bits(val.Index(i).Float()))); err != nil {
				return err
			}
		}
		return nil

	case reflect.String:
		if err := e.writeListHeader(tagName, TagString, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeString(val.Index(i).String()); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		// Every element must share one concrete type; the list is re-encoded as a slice of that type.
		var elemType reflect.Type
		for i := 0; i < n; i++ {
			t := val.Index(i).Elem().Type()
			if elemType == nil {
				elemType = t
			} else if elemType != t {
				return errors.New("nbt: mixed types " + elemType.String() + " and " + t.String() + " in list " + tagName)
			}
		}
		if elemType == nil {
			return e.writeListHeader(tagName, TagEnd, 0)
		}
		if elemType.Kind() == reflect.Interface {
			return errors.New("nbt: list " + tagName + " has no concrete element type")
		}
		typed := reflect.MakeSlice(reflect.SliceOf(elemType), n, n)
		for i := 0; i < n; i++ {
			typed.Index(i).Set(val.Index(i).Elem())
		}
		return e.marshalArray(typed, tagName, elemType.Kind())

	default:
		return errors.New("nbt: cannot encode list of " + elementKind.String() + " for tag " + tagName)
	}
}

func (e *Encoder) marshalStruct(val reflect.Value) error {
	t := val.Type()
	for i := 0; i < val.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("nbt")
		if f.PkgPath != "" || tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		if err := e.marshal(val.Field(i), name); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) marshalMap(val reflect.Value) error {
	iter := val.MapRange()
	for iter.Next() {
		if err := e.marshal(iter.Value(), iter.Key().String()); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) writeTag(tagType byte, tagName string) error {
	if _, err := e.w.Write([]byte{tagType}); err != nil {
		return err
	}
	return e.writeString(tagName)
}

func (e *Encoder) writeListHeader(tagName string, elemType byte, n int) error {
	if err := e.writeTag(TagList, tagName); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{elemType}); err != nil {
		return err
	}
	return e.writeInt32(int32(n))
}

func (e *Encoder) writeString(s string) error {
	if err := e.writeInt16(int16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) writeInt16(n int16) error {
	_, err := e.w.Write([]byte{byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt32(n int32) error {
	_, err := e.w.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt64(n int64) error {
	_, err := e.w.Write([]byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func integer(val reflect.Value) int64 {
	switch val.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return int64(val.Uint())
	default:
		return val.Int()
	}
}
