package protocol

import (
	"reflect"

	"github.com/alttch/bma-jrpc/jrpc/codec"
	"github.com/tinylib/msgp/msgp"
)

// MarshalMsg implements msgp.Marshaler.
func (r *Request) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendMapHeader(b, 4)
	b = msgp.AppendString(b, `jsonrpc`)
	b = msgp.AppendString(b, r.Version)
	b = msgp.AppendString(b, `id`)
	b = msgp.AppendUint64(b, r.ID)
	b = msgp.AppendString(b, `method`)
	b = msgp.AppendString(b, r.Method)
	b = msgp.AppendString(b, `params`)
	return codec.AppendMsg(b, r.Params)
}

// UnmarshalMsg implements msgp.Unmarshaler.
func (r *Request) UnmarshalMsg(b []byte) ([]byte, error) {
	return readMap(b, func(key string, b []byte) (o []byte, err error) {
		switch key {
		case `jsonrpc`:
			r.Version, o, err = msgp.ReadStringBytes(b)
		case `id`:
			r.ID, o, err = msgp.ReadUint64Bytes(b)
		case `method`:
			r.Method, o, err = msgp.ReadStringBytes(b)
		case `params`:
			o, err = r.unmarshalParams(b)
		default:
			o, err = msgp.Skip(b)
		}
		return
	})
}

func (r *Request) unmarshalParams(b []byte) ([]byte, error) {
	o, err := msgp.Skip(b)
	if err != nil {
		return b, err
	}
	raw := b[:len(b)-len(o)]
	if isPointer(r.Params) && !msgp.IsNil(raw) {
		return o, codec.UnmarshalMsg(raw, r.Params)
	}
	r.Params, _, err = msgp.ReadIntfBytes(raw)
	return o, err
}

func isPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && !rv.IsNil()
}

// Msgsize implements msgp.Sizer, it is exact for the envelope and an estimate for the result.
func (r *Response) Msgsize() int {
	n := msgp.MapHeaderSize +
		msgp.StringPrefixSize + len(`jsonrpc`) + msgp.StringPrefixSize + len(r.Version) +
		msgp.StringPrefixSize + len(`id`) + msgp.Uint64Size
	if len(r.Result) > 0 {
		n += msgp.StringPrefixSize + len(`result`) + r.Result.Msgsize()
	}
	if r.Error != nil {
		n += msgp.StringPrefixSize + len(`error`) + r.Error.Msgsize()
	}
	return n
}

// MarshalMsg implements msgp.Marshaler.  Absent result and error fields are omitted.
func (r *Response) MarshalMsg(b []byte) ([]byte, error) {
	var n uint32 = 2
	if len(r.Result) > 0 {
		n++
	}
	if r.Error != nil {
		n++
	}
	b = msgp.AppendMapHeader(b, n)
	b = msgp.AppendString(b, `jsonrpc`)
	b = msgp.AppendString(b, r.Version)
	b = msgp.AppendString(b, `id`)
	b = msgp.AppendUint64(b, r.ID)
	var err error
	if len(r.Result) > 0 {
		b = msgp.AppendString(b, `result`)
		b, err = r.Result.MarshalMsg(b)
		if err != nil {
			return b, err
		}
	}
	if r.Error != nil {
		b = msgp.AppendString(b, `error`)
		b, err = r.Error.MarshalMsg(b)
	}
	return b, err
}

// UnmarshalMsg implements msgp.Unmarshaler.  Like UnmarshalJSON it requires non-nil jsonrpc and id fields.
func (r *Response) UnmarshalMsg(b []byte) ([]byte, error) {
	var seen uint8
	o, err := readMap(b, func(key string, b []byte) (o []byte, err error) {
		switch key {
		case `jsonrpc`:
			if msgp.IsNil(b) {
				return msgp.ReadNilBytes(b)
			}
			seen |= seenVersion
			r.Version, o, err = msgp.ReadStringBytes(b)
		case `id`:
			if msgp.IsNil(b) {
				return msgp.ReadNilBytes(b)
			}
			seen |= seenID
			r.ID, o, err = msgp.ReadUint64Bytes(b)
		case `result`:
			o, err = r.Result.UnmarshalMsg(b)
		case `error`:
			if msgp.IsNil(b) {
				r.Error = nil
				return msgp.ReadNilBytes(b)
			}
			r.Error = new(Error)
			o, err = r.Error.UnmarshalMsg(b)
		default:
			o, err = msgp.Skip(b)
		}
		return
	})
	switch {
	case err != nil:
		return o, err
	case seen&seenVersion == 0:
		return o, MissingField(`jsonrpc`)
	case seen&seenID == 0:
		return o, MissingField(`id`)
	}
	return o, nil
}

const (
	seenVersion uint8 = 1 << iota
	seenID
)

// Msgsize implements msgp.Sizer.
func (e *Error) Msgsize() int {
	return msgp.MapHeaderSize +
		msgp.StringPrefixSize + len(`code`) + msgp.Int16Size +
		msgp.StringPrefixSize + len(`message`) + msgp.StringPrefixSize + len(e.Message)
}

// MarshalMsg implements msgp.Marshaler.
func (e *Error) MarshalMsg(b []byte) ([]byte, error) {
	if e.Message == `` {
		b = msgp.AppendMapHeader(b, 1)
	} else {
		b = msgp.AppendMapHeader(b, 2)
	}
	b = msgp.AppendString(b, `code`)
	b = msgp.AppendInt16(b, e.Code)
	if e.Message != `` {
		b = msgp.AppendString(b, `message`)
		b = msgp.AppendString(b, e.Message)
	}
	return b, nil
}

// UnmarshalMsg implements msgp.Unmarshaler.  A nil message is treated as absent.
func (e *Error) UnmarshalMsg(b []byte) ([]byte, error) {
	return readMap(b, func(key string, b []byte) (o []byte, err error) {
		switch key {
		case `code`:
			e.Code, o, err = msgp.ReadInt16Bytes(b)
		case `message`:
			if msgp.IsNil(b) {
				e.Message = ``
				return msgp.ReadNilBytes(b)
			}
			e.Message, o, err = msgp.ReadStringBytes(b)
		default:
			o, err = msgp.Skip(b)
		}
		return
	})
}

// MarshalMsg implements msgp.Marshaler, an empty Raw is encoded as nil.
func (r Raw) MarshalMsg(b []byte) ([]byte, error) { return msgp.Raw(r).MarshalMsg(b) }

// UnmarshalMsg implements msgp.Unmarshaler, a nil value leaves Raw empty.
func (r *Raw) UnmarshalMsg(b []byte) ([]byte, error) { return (*msgp.Raw)(r).UnmarshalMsg(b) }

// Msgsize implements msgp.Sizer.
func (r Raw) Msgsize() int { return msgp.Raw(r).Msgsize() }

// readMap reads a map header and calls fn with each key and the bytes that follow it; fn must consume the value.
func readMap(b []byte, fn func(key string, b []byte) ([]byte, error)) ([]byte, error) {
	sz, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, b, err = msgp.ReadMapKeyZC(b)
		if err != nil {
			return b, err
		}
		b, err = fn(string(key), b)
		if err != nil {
			return b, msgp.WrapError(err, string(key))
		}
	}
	return b, nil
}
