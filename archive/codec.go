package archive

import (
	"encoding/json"
	"fmt"

	"github.com/sgostarter/librecorder/recorder"
	"gopkg.in/yaml.v3"
)

func marshal(format Format, doc *Document) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, ErrFormat
	}
}

func unmarshal(format Format, raw []byte, doc *Document) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(raw, doc)
	case FormatYAML:
		return yaml.Unmarshal(raw, doc)
	default:
		return ErrFormat
	}
}

// EncodeSamples serializes ss into a self-describing blob. JSON cannot carry
// NaN or infinite y values, use FormatYAML for those.
func EncodeSamples(ss []recorder.Sample, options ...Option) ([]byte, error) {
	opts := optionNew(options...)

	raw, err := marshal(opts.format, NewDocument(ss))
	if err != nil {
		return nil, err
	}

	return pack(raw, opts.format, opts.compression)
}

// DecodeSamples reverses EncodeSamples. The format and compression come from
// the blob itself.
func DecodeSamples(d []byte) ([]recorder.Sample, error) {
	format, raw, err := unpack(d)
	if err != nil {
		return nil, err
	}

	var doc Document

	if err = unmarshal(format, raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	if doc.Version <= 0 || doc.Version > Version {
		return nil, ErrVersion
	}

	if doc.Type != recorder.FunctionTypeRecorder.String() {
		return nil, ErrType
	}

	return doc.Samples, nil
}

func Encode(r *recorder.Recorder, options ...Option) ([]byte, error) {
	return EncodeSamples(r.Samples(), options...)
}

// Decode builds a recorder from an encoded blob. The samples go through
// AddPoint, so the result is ordered and deduplicated even for hand-written
// input. The cursor starts unset.
func Decode(d []byte, options ...recorder.Option) (*recorder.Recorder, error) {
	ss, err := DecodeSamples(d)
	if err != nil {
		return nil, err
	}

	r := recorder.NewRecorder(append([]recorder.Option{recorder.WithCapacity(len(ss))}, options...)...)
	r.Replace(ss)

	return r, nil
}
