package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/tree"
)

const testManifest = `
fields:
  - name: player
    type: object
    fields:
      - {name: id, type: uint32, value: 7}
      - {name: label, type: string, value: crate}
      - name: shape
        type: prototype
        fields:
          - {name: id, type: uint32}
          - {name: pos, type: vector2f}
`

// capture runs args and returns what the command wrote to stdout.
func capture(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	defer func() { stdout = prev }()
	if err := run(args); err != nil {
		t.Fatalf("blobtool %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func buildSample(t *testing.T) (dir, manifestPath, blobPath string) {
	t.Helper()
	dir = t.TempDir()
	manifestPath = filepath.Join(dir, "sample.yaml")
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	blobPath = filepath.Join(dir, "sample.blob")
	capture(t, "build", manifestPath, "-o", blobPath)
	return dir, manifestPath, blobPath
}

func TestBuildOptimizeDump(t *testing.T) {
	_, manifestPath, blobPath := buildSample(t)

	capture(t, "optimize", blobPath)
	opt, err := os.ReadFile(blobPath + ".opt")
	if err != nil {
		t.Fatal(err)
	}
	fields, err := blob.LittleEndian.Fields(opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 || fields[0].Type != blob.TypeRuntimeObject {
		t.Fatalf("optimized fields = %+v", fields)
	}

	out := capture(t, "dump", "--format", "json", "--names", manifestPath, blobPath+".opt")
	var doc []map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("dump output is not JSON: %v\n%s", err, out)
	}
	if len(doc) != 1 || doc[0]["label"] != "crate" || doc[0]["id"] != float64(7) {
		t.Errorf("dump = %v", doc)
	}

	text := capture(t, "dump", "--color", "never", "--names", manifestPath, blobPath)
	if !strings.Contains(text, `label string = "crate"`) {
		t.Errorf("text dump:\n%s", text)
	}
}

func TestBuild_BigEndian(t *testing.T) {
	dir, manifestPath, _ := buildSample(t)
	be := filepath.Join(dir, "be.blob")
	capture(t, "build", "--order", "be", "--optimize", manifestPath, "-o", be)

	data, err := os.ReadFile(be)
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := tree.Decode(blob.BigEndian, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if nodes[0].Type != blob.TypeRuntimeObject {
		t.Errorf("type = %s", nodes[0].Type)
	}
}

func TestSchema(t *testing.T) {
	_, manifestPath, blobPath := buildSample(t)
	out := capture(t, "schema", "--names", manifestPath, blobPath)
	want := "// size 12, align 4\nrecord shape {\n    id: u32,\n    pos: tuple<f32, f32>,\n}\n"
	if !strings.Contains(out, want) {
		t.Errorf("schema output:\n%s\nwant:\n%s", out, want)
	}
}

func TestBase64(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	if err := os.WriteFile(in, []byte("Man"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := capture(t, "base64", "encode", in); got != "TWFu\n" {
		t.Errorf("encode = %q", got)
	}

	enc := filepath.Join(dir, "enc")
	if err := os.WriteFile(enc, []byte("TWFu\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := capture(t, "base64", "decode", enc); got != "Man" {
		t.Errorf("decode = %q", got)
	}
}

func TestBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text")
	if err := os.WriteFile(path, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := capture(t, "bom", path); !strings.HasPrefix(got, "utf-16le (2 byte mark)") {
		t.Errorf("bom = %q", got)
	}
	if got := capture(t, "bom", "--decode", path); got != "hi" {
		t.Errorf("bom --decode = %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := [][]string{
		{"frobnicate"},
		{"build", "missing.yaml"},
		{"dump", "--order", "middle", "x"},
		{"base64", "rot13"},
	}
	for _, args := range tests {
		if err := run(args); err == nil {
			t.Errorf("blobtool %v: expected error", args)
		}
	}
}

func TestBrowserModel_Filter(t *testing.T) {
	nodes := []tree.Node{
		tree.Object(0,
			tree.Scalar(blob.Name("id"), blob.TypeUint32, uint32(1)),
			tree.String(blob.Name("label"), "crate"),
		),
	}
	names := map[uint32]string{blob.Name("id"): "id", blob.Name("label"): "label"}
	m := newBrowserModel("x.blob", nodes, names)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if m.shown != 3 {
		t.Fatalf("shown = %d, want 3", m.shown)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filtering {
		t.Fatal("expected filter mode")
	}
	for _, r := range "label" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if m.shown != 1 {
		t.Errorf("shown = %d after filtering, want 1", m.shown)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filtering || m.shown != 3 {
		t.Errorf("after esc: filtering=%v shown=%d", m.filtering, m.shown)
	}
}
