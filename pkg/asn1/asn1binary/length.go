package asn1binary

import (
	"github.com/davidjspooner/printer-probe/pkg/asn1/asn1error"
)

// AppendLength appends a BER length to dst. Values below 128 use the short
// form; anything larger uses the long form with a minimal big-endian byte
// count. SNMP datagrams never exceed 64KB so 4 length bytes is plenty.
func AppendLength(dst []byte, n int) ([]byte, error) {
	if n < 0 {
		return dst, asn1error.NewEncodeError("negative length %d", n)
	}
	if n < 128 {
		return append(dst, byte(n)), nil
	}
	var scratch [8]byte
	count := 0
	for v := n; v > 0; v >>= 8 {
		scratch[count] = byte(v)
		count++
	}
	dst = append(dst, byte(0x80|count))
	for i := count - 1; i >= 0; i-- {
		dst = append(dst, scratch[i])
	}
	return dst, nil
}

// DecodeLength reads a BER length from the front of buf and returns the
// length together with the number of bytes consumed. Truncated or indefinite
// forms are rejected.
func DecodeLength(buf []byte) (length int, consumed int, err error) {
	if len(buf) == 0 {
		return 0, 0, asn1error.NewUnexpectedError(1, 0, "length truncated").WithUnits("byte(s)")
	}
	first := buf[0]
	if first < 0x80 {
		return int(first), 1, nil
	}
	count := int(first & 0x7F)
	if count == 0 {
		return 0, 0, asn1error.NewDecodeError("indefinite length not supported")
	}
	if count > 4 {
		return 0, 0, asn1error.NewDecodeError("length encoding of %d bytes is too large", count)
	}
	if len(buf) < 1+count {
		return 0, 0, asn1error.NewUnexpectedError(1+count, len(buf), "length(long) truncated").WithUnits("byte(s)")
	}
	for i := 0; i < count; i++ {
		length = length<<8 | int(buf[1+i])
	}
	return length, 1 + count, nil
}
