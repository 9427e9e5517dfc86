package qrng

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/alan-christopher/qrng/qrng/bitarray"
	"google.golang.org/protobuf/encoding/protowire"
)

// Wire field numbers for framed bit payloads.
const (
	bitLenField  = 1
	bitDataField = 2
)

// A BitFramer reads and writes framed, packed bit buffers, for handing
// extractor inputs and outputs across a process or storage boundary. The
// structure of the frame is trivial: payload-length | payload, where the
// payload carries the bit count and packed bytes as protobuf wire fields.
type BitFramer struct {
	RW io.ReadWriter
}

// Write frames and writes a single bit buffer.
func (f *BitFramer) Write(d bitarray.Dense) error {
	var payload []byte
	payload = protowire.AppendTag(payload, bitLenField, protowire.VarintType)
	payload = protowire.AppendVarint(payload, uint64(d.Size()))
	payload = protowire.AppendTag(payload, bitDataField, protowire.BytesType)
	payload = protowire.AppendBytes(payload, d.Data())
	if err := binary.Write(f.RW, binary.LittleEndian, int32(len(payload))); err != nil {
		return err
	}
	_, err := f.RW.Write(payload)
	return err
}

// Read reads and decodes a single framed bit buffer.
func (f *BitFramer) Read() (bitarray.Dense, error) {
	var pLen int32
	if err := binary.Read(f.RW, binary.LittleEndian, &pLen); err != nil {
		return bitarray.Empty(), err
	}
	payload := make([]byte, pLen)
	if _, err := io.ReadFull(f.RW, payload); err != nil {
		return bitarray.Empty(), err
	}
	var (
		bitLen            uint64
		data              []byte
		haveLen, haveData bool
	)
	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		if n < 0 {
			return bitarray.Empty(), protowire.ParseError(n)
		}
		payload = payload[n:]
		switch {
		case num == bitLenField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(payload)
			if n < 0 {
				return bitarray.Empty(), protowire.ParseError(n)
			}
			bitLen, haveLen = v, true
			payload = payload[n:]
		case num == bitDataField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(payload)
			if n < 0 {
				return bitarray.Empty(), protowire.ParseError(n)
			}
			data, haveData = v, true
			payload = payload[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, payload)
			if n < 0 {
				return bitarray.Empty(), protowire.ParseError(n)
			}
			payload = payload[n:]
		}
	}
	if !haveLen || !haveData {
		return bitarray.Empty(), fmt.Errorf("incomplete bit frame: len=%v data=%v", haveLen, haveData)
	}
	if int(bitLen) > len(data)*8 {
		return bitarray.Empty(), fmt.Errorf(
			"bit frame declares %d bits but carries only %d bytes", bitLen, len(data))
	}
	return bitarray.NewDense(data, int(bitLen)), nil
}
