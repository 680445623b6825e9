package archive

import (
	"encoding/binary"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Encoded layout: [Format uint8][Compression uint8][reserved uint16][RawSize uint32][Body...]
const headerSize = 8

// MaxDocumentSize bounds the serialized size of one document before
// compression. Larger blobs are refused on both encode and decode.
const MaxDocumentSize = 256 << 20

// An LZ4 block never expands its input by more than this factor.
const lz4MaxRatio = 255

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDocumentSize))

	return dec
}

func putHeader(dst []byte, format Format, compression Compression, rawSize int) {
	dst[0] = byte(format)
	dst[1] = byte(compression)
	binary.LittleEndian.PutUint16(dst[2:], 0)
	binary.LittleEndian.PutUint32(dst[4:], uint32(rawSize))
}

// pack compresses raw and prefixes the header. Input LZ4 cannot shrink is
// stored uncompressed.
func pack(raw []byte, format Format, compression Compression) (d []byte, err error) {
	if len(raw) > MaxDocumentSize {
		err = ErrBadData

		return
	}

	var body []byte

	switch compression {
	case CompressionNone:
		body = raw
	case CompressionLZ4:
		body = make([]byte, lz4.CompressBlockBound(len(raw)))

		n, e := lz4.CompressBlock(raw, body, nil)
		if e != nil {
			err = e

			return
		}

		if n == 0 {
			compression, body = CompressionNone, raw
		} else {
			body = body[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		body = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		err = ErrCompression

		return
	}

	d = make([]byte, headerSize+len(body))
	putHeader(d, format, compression, len(raw))
	copy(d[headerSize:], body)

	return
}

func unpack(d []byte) (format Format, raw []byte, err error) {
	if len(d) < headerSize {
		err = ErrBadData

		return
	}

	format = Format(d[0])
	if format != FormatJSON && format != FormatYAML {
		err = ErrFormat

		return
	}

	rawSize := binary.LittleEndian.Uint32(d[4:])
	body := d[headerSize:]

	if rawSize > MaxDocumentSize {
		err = ErrBadData

		return
	}

	switch Compression(d[1]) {
	case CompressionNone:
		if uint32(len(body)) != rawSize {
			err = ErrBadData

			return
		}

		raw = body
	case CompressionLZ4:
		if uint64(rawSize) > uint64(len(body))*lz4MaxRatio {
			err = ErrBadData

			return
		}

		raw = make([]byte, rawSize)

		n, e := lz4.UncompressBlock(body, raw)
		if e != nil || uint32(n) != rawSize {
			err = ErrBadData

			return
		}
	case CompressionZSTD:
		dec := getZstdDecoder()
		raw, err = dec.DecodeAll(body, nil)
		zstdDecoderPool.Put(dec)

		if err != nil || uint32(len(raw)) != rawSize {
			raw, err = nil, ErrBadData

			return
		}
	default:
		err = ErrCompression
	}

	return
}
