// Package binary implements the little-endian metafile byte codec.
//
// Values are laid out in the host's byte order first and swapped when the
// host is big-endian, so the output never depends on the machine that
// produced it. Both Reader and Writer keep the first error they hit and turn
// every later call into a no-op; check Err once a record is done.
package binary

import (
	"encoding/binary"
)

// HostOrder is the byte order of the running machine
var HostOrder = detectHostOrder()

func detectHostOrder() binary.ByteOrder {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 0x0102)
	if b[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Options configures a Reader or Writer
type Options struct {
	// HostOrder overrides the detected host byte order. Tests use it to
	// exercise the swapping path on little-endian machines.
	HostOrder binary.ByteOrder
}

func (o Options) order() (binary.ByteOrder, bool) {
	host := o.HostOrder
	if host == nil {
		host = HostOrder
	}
	var b [2]byte
	host.PutUint16(b[:], 0x0102)
	return host, b[0] == 0x01
}

// RecordHeaderSize is the size of the type tag and length that start every record
const RecordHeaderSize = 8

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
