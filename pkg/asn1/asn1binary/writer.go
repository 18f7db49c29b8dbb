package asn1binary

// Writer is an append-only buffer for assembling BER frames. The first error
// latches; later writes become no-ops so call sites can chain without
// checking after every append.
type Writer struct {
	buf []byte
	err error
}

func (w *Writer) WriteValue(v *Value) *Writer {
	if w.err != nil {
		return w
	}
	b, err := v.Marshal()
	if err != nil {
		w.err = err
		return w
	}
	w.buf = append(w.buf, b...)
	return w
}

func (w *Writer) WriteRaw(b []byte) *Writer {
	if w.err == nil {
		w.buf = append(w.buf, b...)
	}
	return w
}

func (w *Writer) Bytes() ([]byte, error) {
	return w.buf, w.err
}

// Wrap builds a constructed value whose content is the concatenated
// encodings of the children.
func Wrap(env Envelope, children ...*Value) (*Value, error) {
	w := Writer{}
	for _, child := range children {
		w.WriteValue(child)
	}
	bytes, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	return &Value{Envelope: env, Bytes: bytes}, nil
}
