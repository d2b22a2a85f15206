package witschema

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		typ  blob.Type
		want string
	}{
		{blob.TypeBool, "bool"},
		{blob.TypeChar, "u8"},
		{blob.TypeInt8, "s8"},
		{blob.TypeUint16, "u16"},
		{blob.TypeInt32, "s32"},
		{blob.TypeUint64, "u64"},
		{blob.TypeFloat32, "f32"},
		{blob.TypeFloat64, "f64"},
		{blob.TypeNull, "tuple<>"},
		{blob.TypeVector2F, "tuple<f32, f32>"},
		{blob.TypeArray, "list<u8>"},
		{blob.TypeRuntimeObject, "list<u8>"},
	}
	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			typ, err := TypeOf(tc.typ)
			if err != nil {
				t.Fatal(err)
			}
			if got := TypeString(typ); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}

	_, err := TypeOf(blob.TypeNone)
	if e, ok := err.(*errors.Error); !ok || e.Kind != errors.KindUnsupported {
		t.Errorf("TypeOf(none) = %v", err)
	}
}

func TestTypeOf_MatrixSizes(t *testing.T) {
	c := NewCalculator()
	for _, typ := range []blob.Type{
		blob.TypeVector3F, blob.TypeVector4F,
		blob.TypeMatrix2x2F, blob.TypeMatrix3x3F, blob.TypeMatrix3x4F, blob.TypeMatrix4x4F,
	} {
		w, err := TypeOf(typ)
		if err != nil {
			t.Fatal(err)
		}
		info := c.Calculate(w)
		if info.Size != typ.Size() || info.Align != 4 {
			t.Errorf("%s: size %d align %d, want %d/4", typ, info.Size, info.Align, typ.Size())
		}
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{}}}
		info := c.Calculate(typedef)
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got %+v", info)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		record := &wit.Record{
			Fields: []wit.Field{
				{Name: "a", Type: wit.U8{}},
				{Name: "b", Type: wit.U32{}},
				{Name: "c", Type: wit.U8{}},
				{Name: "d", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
				{Name: "e", Type: wit.F64{}},
			},
		}
		info := c.Calculate(&wit.TypeDef{Kind: record})
		want := map[string]uint32{"a": 0, "b": 4, "c": 8, "d": 12, "e": 24}
		for name, off := range want {
			if info.FieldOffs[name] != off {
				t.Errorf("field %s offset: got %d, want %d", name, info.FieldOffs[name], off)
			}
		}
		if info.Size != 32 || info.Align != 8 {
			t.Errorf("size %d align %d, want 32/8", info.Size, info.Align)
		}
	})

	t.Run("cached", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U16{}, wit.U8{}}}}
		first := c.Calculate(typedef)
		second := c.Calculate(typedef)
		if first.Size != 4 || second.Size != 4 {
			t.Errorf("tuple sizes %d, %d", first.Size, second.Size)
		}
	})
}

func TestRecord(t *testing.T) {
	fields := []blob.PrototypeField{
		{Name: blob.Name("playerId"), Type: blob.TypeUint32},
		{Name: blob.Name("position"), Type: blob.TypeVector3F},
		{Name: 0x2a, Type: blob.TypeBool},
		{Name: blob.Name("tags"), Type: blob.TypeArray},
	}
	names := Names(map[uint32]string{
		blob.Name("playerId"): "playerId",
		blob.Name("position"): "position",
		blob.Name("tags"):     "tags",
	})

	td, err := Record("Player State", fields, names)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Render(td)
	if err != nil {
		t.Fatal(err)
	}
	want := `record player-state {
    player-id: u32,
    position: tuple<f32, f32, f32>,
    f-0000002a: bool,
    tags: list<u8>,
}
`
	if got != want {
		t.Errorf("Render:\n%s\nwant:\n%s", got, want)
	}

	info := NewCalculator().Calculate(td)
	if info.FieldOffs["f-0000002a"] != 16 || info.FieldOffs["tags"] != 20 || info.Size != 28 {
		t.Errorf("layout = %+v", info)
	}
}

func TestRecord_Errors(t *testing.T) {
	_, err := Record("p", []blob.PrototypeField{{Name: 1, Type: blob.TypeNone}}, nil)
	e, ok := err.(*errors.Error)
	if !ok || len(e.Path) != 1 || e.Path[0] != "name:0x00000001" {
		t.Errorf("Record error = %v", err)
	}

	if _, err := Render(&wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}); err == nil {
		t.Error("Render accepted a list")
	}
}

func TestIdent(t *testing.T) {
	tests := map[string]string{
		"position":     "position",
		"player_id":    "player-id",
		"PlayerID":     "player-id",
		"HTTPServer":   "httpserver",
		"2d-pos":       "x2d-pos",
		"--":           "",
		"  spaced out": "spaced-out",
	}
	for in, want := range tests {
		if got := Ident(in); got != want {
			t.Errorf("Ident(%q) = %q, want %q", in, got, want)
		}
	}
}
