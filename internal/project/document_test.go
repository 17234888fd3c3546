package project

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false},
  "rects": [{"w": 10, "h": 10}, {"w": 10, "h": 10}, {"w": 10, "h": 5}]
}`

const sampleOut = `{
    "config": {
        "spacingX": 0,
        "spacingY": 0,
        "cropX": false,
        "cropY": false
    },
    "pages": [
        {
            "h": 16,
            "w": 32
        }
    ],
    "rects": [
        {
            "h": 10,
            "p": 0,
            "w": 10,
            "x": 0,
            "y": 0
        },
        {
            "h": 10,
            "p": 0,
            "w": 10,
            "x": 10,
            "y": 0
        },
        {
            "h": 5,
            "p": 0,
            "w": 10,
            "x": 0,
            "y": 10
        }
    ]
}
`

func packDoc(t *testing.T, doc *Document) {
	t.Helper()
	res, err := engine.New(doc.Config).Pack(doc.Rects)
	require.NoError(t, err)
	require.NoError(t, doc.Apply(res))
}

func TestDecode_Sample(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))

	require.NoError(t, err)
	assert.Equal(t, model.LayoutConfig{}, doc.Config)
	require.Len(t, doc.Rects, 3)
	assert.Equal(t, model.Rect{Index: 2, W: 10, H: 5}, doc.Rects[2])
}

func TestDecode_OptionalFields(t *testing.T) {
	in := `{"config": {"spacingX": 2, "spacingY": 3, "borderX": 1, "borderY": 4,
		"cropX": true, "cropY": false, "order": "AreaDesc", "maxPages": 2},
		"rects": []}`

	doc, err := Decode(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, model.LayoutConfig{
		SpacingX: 2, SpacingY: 3, BorderX: 1, BorderY: 4,
		CropX: true, Order: "AreaDesc", MaxPages: 2,
	}, doc.Config)
	assert.Empty(t, doc.Rects)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not json", `{`, ""},
		{"not object", `[1, 2]`, ""},
		{"null", `null`, "must be an object"},
		{"missing config", `{"rects": []}`, "missing config"},
		{"config not object", `{"config": 3, "rects": []}`, "config must be an object"},
		{"missing spacingY", `{"config": {"spacingX": 0, "cropX": false, "cropY": false}, "rects": []}`, "config.spacingY"},
		{"missing cropX", `{"config": {"spacingX": 0, "spacingY": 0, "cropY": false}, "rects": []}`, "config.cropX"},
		{"negative spacing", `{"config": {"spacingX": -1, "spacingY": 0, "cropX": false, "cropY": false}, "rects": []}`, "config"},
		{"crop not bool", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": 1, "cropY": false}, "rects": []}`, "config"},
		{"bad order", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false, "order": "Up"}, "rects": []}`, "config.order"},
		{"negative maxPages", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false, "maxPages": -1}, "rects": []}`, "maxPages"},
		{"missing rects", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}}`, "missing rects"},
		{"rects not array", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}, "rects": {}}`, "array"},
		{"rect not object", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}, "rects": [null]}`, "rects[0]"},
		{"missing h", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}, "rects": [{"w": 1}]}`, "missing h"},
		{"zero w", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}, "rects": [{"w": 1, "h": 1}, {"w": 0, "h": 1}]}`, "rects[1]: w must be positive"},
		{"fractional h", `{"config": {"spacingX": 0, "spacingY": 0, "cropX": false, "cropY": false}, "rects": [{"w": 1, "h": 1.5}]}`, "rects[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncode_Sample(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	packDoc(t, doc)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	assert.Equal(t, sampleOut, buf.String())
}

func TestEncode_PreservesUnknownFields(t *testing.T) {
	in := `{"config": {"spacingX": 1, "spacingY": 1, "cropX": true, "cropY": true, "font": "<mono>"},
		"generator": {"name": "fontgen", "version": 3},
		"rects": [{"w": 4, "h": 4, "name": "a&b", "glyph": 65}],
		"pages": "stale"}`
	doc, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	packDoc(t, doc)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, map[string]any{"name": "fontgen", "version": 3.0}, out["generator"])
	assert.Equal(t, "<mono>", out["config"].(map[string]any)["font"])

	rects := out["rects"].([]any)
	require.Len(t, rects, 1)
	r := rects[0].(map[string]any)
	assert.Equal(t, "a&b", r["name"])
	assert.Equal(t, 65.0, r["glyph"])
	assert.Equal(t, 0.0, r["x"])
	assert.Equal(t, 0.0, r["p"])

	assert.Equal(t, []any{map[string]any{"w": 4.0, "h": 4.0}}, out["pages"])
	assert.Contains(t, buf.String(), `"<mono>"`, "HTML characters must not be escaped")
	assert.Equal(t, "a&b", doc.Name(0))
}

func TestEncode_Deterministic(t *testing.T) {
	encode := func() string {
		doc, err := Decode(strings.NewReader(sampleDoc))
		require.NoError(t, err)
		packDoc(t, doc)
		var buf bytes.Buffer
		require.NoError(t, doc.Encode(&buf))
		return buf.String()
	}

	assert.Equal(t, encode(), encode())
}

func TestApply_LengthMismatch(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Error(t, doc.Apply(model.Result{}))
}

func TestNewDocument_RoundTrip(t *testing.T) {
	cfg := model.LayoutConfig{SpacingX: 1, SpacingY: 1, BorderX: 2, CropY: true, Order: "HeightDesc"}
	doc, err := NewDocument(cfg, []model.Rect{{W: 3, H: 4}, {W: 5, H: 6}})
	require.NoError(t, err)
	require.NoError(t, doc.SetRectField(1, "name", "glyph_b"))
	assert.Error(t, doc.SetRectField(5, "name", "x"))

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	back, err := Decode(&buf)

	require.NoError(t, err)
	assert.Equal(t, cfg, back.Config)
	assert.Equal(t, doc.Rects, back.Rects)
	assert.Equal(t, []string{"#0", "glyph_b"}, back.Names())
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out", "layout.json")
	require.NoError(t, os.WriteFile(in, []byte(sampleDoc), 0644))

	doc, err := Load(in)
	require.NoError(t, err)
	packDoc(t, doc)
	require.NoError(t, Save(out, doc))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, sampleOut, string(data))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrInvalidDocument)
}
