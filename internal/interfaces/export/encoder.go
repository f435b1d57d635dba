package export

import (
	"fmt"
	"io"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Encoder writes report payloads as JSON, one document per call. Each
// document is wrapped in an envelope naming the report kind and when it was
// generated, so dumps from different subcommands stay self-describing.
type Encoder struct {
	out    io.Writer
	pretty bool

	now func() time.Time
}

type envelope struct {
	Kind        string `json:"kind"`
	GeneratedAt string `json:"generatedAt"`
	Data        any    `json:"data"`
}

func NewEncoder(out io.Writer) *Encoder {
	return &Encoder{out: out, now: time.Now}
}

// NewPrettyEncoder indents output for terminals.
func NewPrettyEncoder(out io.Writer) *Encoder {
	return &Encoder{out: out, pretty: true, now: time.Now}
}

func (e *Encoder) Encode(kind string, payload any) error {
	if kind == "" {
		return fmt.Errorf("report kind is required")
	}

	doc := envelope{
		Kind:        kind,
		GeneratedAt: e.now().UTC().Format(time.RFC3339),
		Data:        payload,
	}

	var (
		encoded []byte
		err     error
	)
	if e.pretty {
		encoded, err = sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	} else {
		encoded, err = sonic.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode %s report: %w", kind, err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.Write(encoded)
	_ = buf.WriteByte('\n')

	if _, err := e.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s report: %w", kind, err)
	}

	return nil
}
