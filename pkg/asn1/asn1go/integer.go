package asn1go

import (
	"encoding/hex"
	"strconv"

	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1binary"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1core"
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
)

//--------------------------------------------------------------------------------------------

// Integer holds the raw two's-complement content octets of a BER INTEGER.
type Integer []byte

func (v Integer) Pack() (asn1binary.Value, error) {
	if len(v) == 0 {
		return asn1binary.Value{}, asn1error.NewEncodeError("empty integer")
	}
	return asn1binary.Value{
		Envelope: asn1binary.Envelope{Tag: asn1core.TagInteger},
		Bytes:    v,
	}, nil
}

func (v *Integer) Unpack(raw *asn1binary.Value) error {
	content, err := raw.ExpectUniversal(asn1core.TagInteger)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return asn1error.NewUnexpectedError(1, 0, "integer content").WithUnits("byte(s)")
	}
	*v = make([]byte, len(content))
	copy(*v, content)
	return nil
}

func (v Integer) String() string {
	n, err := v.GetInt(64)
	if err != nil {
		return "0x" + hex.EncodeToString(v)
	}
	return strconv.FormatInt(n, 10)
}

// GetInt sign-extends the content octets into an int64, rejecting values
// that do not fit in the given bit width.
func (v Integer) GetInt(bits int) (int64, error) {
	if bits > 64 || bits < 8 {
		return 0, asn1error.NewDecodeError("unsupported bit width %d", bits)
	}
	if len(v) == 0 {
		return 0, asn1error.NewDecodeError("empty integer")
	}
	negative := v[0]&0x80 != 0
	// leading bytes beyond 8 must be pure sign padding, and the retained
	// window must carry the same sign or the value is outside int64
	for i := 0; len(v)-i > 8; i++ {
		if (negative && v[i] != 0xFF) || (!negative && v[i] != 0x00) {
			return 0, asn1error.NewDecodeError("integer is too large for %d bits", bits)
		}
	}
	if len(v) > 8 && (v[len(v)-8]&0x80 != 0) != negative {
		return 0, asn1error.NewDecodeError("integer is too large for %d bits", bits)
	}
	n := int64(0)
	if negative {
		n = -1
	}
	for _, b := range v {
		n = n<<8 | int64(b)
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n >= limit || n < -limit {
			return 0, asn1error.NewDecodeError("integer %d is too large for %d bits", n, bits)
		}
	}
	return n, nil
}

// SetInt stores the minimal two's-complement encoding, with a sign-
// disambiguating leading byte where the top bit would otherwise mislead.
func (v *Integer) SetInt(value int64) {
	byteCount := 1
	for {
		shifted := value >> (8 * (byteCount - 1)) // arithmetic shift keeps the sign
		if shifted >= -128 && shifted <= 127 {
			break
		}
		byteCount++
	}
	out := make([]byte, byteCount)
	for i := 0; i < byteCount; i++ {
		out[byteCount-1-i] = byte(value >> (8 * i))
	}
	*v = out
}

// SetIntWidth stores a fixed-width encoding, eg 4 bytes for the request-id
// quirk mode some printer firmwares require. The value must fit.
func (v *Integer) SetIntWidth(value int64, width int) error {
	if width < 1 || width > 8 {
		return asn1error.NewEncodeError("unsupported integer width %d", width)
	}
	if width < 8 {
		limit := int64(1) << (8*width - 1)
		if value >= limit || value < -limit {
			return asn1error.NewEncodeError("integer %d does not fit in %d bytes", value, width)
		}
	}
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[width-1-i] = byte(value >> (8 * i))
	}
	*v = out
	return nil
}
