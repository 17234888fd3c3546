package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// ErrInvalidDocument is wrapped by every input validation error.
var ErrInvalidDocument = errors.New("invalid document")

// requiredConfigKeys must be present in the document's config object.
var requiredConfigKeys = []string{"spacingX", "spacingY", "cropX", "cropY"}

// Document is a layout input/output document. Fields the tool does not
// know about, at the top level and on each rect, are kept and written back
// unchanged.
type Document struct {
	Config model.LayoutConfig
	Rects  []model.Rect

	fields     map[string]json.RawMessage
	rectFields []map[string]json.RawMessage
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// NewDocument builds a document from a layout configuration and rect sizes.
func NewDocument(cfg model.LayoutConfig, rects []model.Rect) (*Document, error) {
	rawCfg, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	doc := &Document{
		Config:     cfg,
		Rects:      make([]model.Rect, len(rects)),
		fields:     map[string]json.RawMessage{"config": rawCfg},
		rectFields: make([]map[string]json.RawMessage, len(rects)),
	}
	for i, r := range rects {
		doc.Rects[i] = model.Rect{Index: i, W: r.W, H: r.H}
		doc.rectFields[i] = map[string]json.RawMessage{
			"w": rawNumber(uint64(r.W)),
			"h": rawNumber(uint64(r.H)),
		}
	}
	return doc, nil
}

// Load reads and validates a document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a document.
func Decode(r io.Reader) (*Document, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if fields == nil {
		return nil, invalidf("document must be an object")
	}

	doc := &Document{fields: fields}
	if err := doc.decodeConfig(); err != nil {
		return nil, err
	}
	if err := doc.decodeRects(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) decodeConfig() error {
	raw, ok := d.fields["config"]
	if !ok {
		return invalidf("missing config")
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || keys == nil {
		return invalidf("config must be an object")
	}
	for _, k := range requiredConfigKeys {
		if _, ok := keys[k]; !ok {
			return invalidf("missing config.%s", k)
		}
	}
	if err := json.Unmarshal(raw, &d.Config); err != nil {
		return invalidf("config: %v", err)
	}
	if _, err := engine.ParseOrder(d.Config.Order); err != nil {
		return invalidf("config.order: %v", err)
	}
	if d.Config.MaxPages < 0 {
		return invalidf("config.maxPages must not be negative")
	}
	return nil
}

func (d *Document) decodeRects() error {
	raw, ok := d.fields["rects"]
	if !ok {
		return invalidf("missing rects")
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return invalidf("rects must be an array of objects")
	}

	d.Rects = make([]model.Rect, len(entries))
	d.rectFields = entries
	for i, e := range entries {
		if e == nil {
			return invalidf("rects[%d] must be an object", i)
		}
		w, err := positiveField(e, "w")
		if err != nil {
			return invalidf("rects[%d]: %v", i, err)
		}
		h, err := positiveField(e, "h")
		if err != nil {
			return invalidf("rects[%d]: %v", i, err)
		}
		d.Rects[i] = model.Rect{Index: i, W: w, H: h}
	}
	return nil
}

func positiveField(e map[string]json.RawMessage, key string) (uint32, error) {
	raw, ok := e[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	var v uint32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return v, nil
}

// Name returns the "name" field of rect i, or the empty string.
func (d *Document) Name(i int) string {
	if i < 0 || i >= len(d.rectFields) {
		return ""
	}
	raw, ok := d.rectFields[i]["name"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Names returns the name of every rect, falling back to "#<index>".
func (d *Document) Names() []string {
	out := make([]string, len(d.Rects))
	for i := range d.Rects {
		out[i] = d.Name(i)
		if out[i] == "" {
			out[i] = fmt.Sprintf("#%d", i)
		}
	}
	return out
}

// SetRectField stores an extra field on rect i.
func (d *Document) SetRectField(i int, key string, v any) error {
	if i < 0 || i >= len(d.rectFields) {
		return fmt.Errorf("rect %d out of range", i)
	}
	raw, err := marshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	d.rectFields[i][key] = raw
	return nil
}

// Apply writes the packing result into the document: x, y and p on every
// rect and a pages array of {w, h}.
func (d *Document) Apply(res model.Result) error {
	if len(res.Rects) != len(d.Rects) {
		return fmt.Errorf("result has %d rects, document has %d", len(res.Rects), len(d.Rects))
	}
	for i, r := range res.Rects {
		d.Rects[i] = r
		d.rectFields[i]["x"] = rawNumber(uint64(r.X))
		d.rectFields[i]["y"] = rawNumber(uint64(r.Y))
		d.rectFields[i]["p"] = rawNumber(uint64(r.Page))
	}

	pages := make([]map[string]uint32, len(res.Pages))
	for i, p := range res.Pages {
		pages[i] = map[string]uint32{"w": p.W, "h": p.H}
	}
	raw, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("encoding pages: %w", err)
	}
	d.fields["pages"] = raw
	return nil
}

// Encode writes the document as JSON with sorted keys and 4-space
// indentation.
func (d *Document) Encode(w io.Writer) error {
	rects, err := marshalNoEscape(d.rectFields)
	if err != nil {
		return fmt.Errorf("encoding rects: %w", err)
	}
	out := make(map[string]json.RawMessage, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	out["rects"] = rects

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// Save encodes the document in memory and then writes it to path, so a
// failed encode leaves no partial file behind.
func Save(path string, d *Document) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// marshalNoEscape is json.Marshal without HTML escaping, so passthrough
// strings are written back as they were read.
func marshalNoEscape(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func rawNumber(v uint64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%d", v))
}
