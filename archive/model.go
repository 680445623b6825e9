package archive

import "github.com/sgostarter/librecorder/recorder"

// Version is the document layout written by Encode. Decode accepts it and
// every older one.
const Version = 1

type Format uint8

const (
	FormatJSON Format = 1
	FormatYAML Format = 2
)

type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZSTD Compression = 2
)

// Document is the persisted form of a recorder: the ordered samples only. The
// cursor is never stored.
type Document struct {
	Version int               `json:"version" yaml:"version"`
	Type    string            `json:"type" yaml:"type"`
	Samples []recorder.Sample `json:"samples" yaml:"samples"`
}

func NewDocument(ss []recorder.Sample) *Document {
	return &Document{
		Version: Version,
		Type:    recorder.FunctionTypeRecorder.String(),
		Samples: ss,
	}
}
