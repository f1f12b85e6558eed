package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/brine/pkg/brine/ast"
	"github.com/sambeau/brine/pkg/brine/lexer"
	"github.com/sambeau/brine/pkg/brine/parser"
)

// helper to parse code that must be valid
func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	res := parser.Parse(input)
	if res.HasErrors() {
		t.Fatalf("parser errors for input %q: %v", input, res.Errors)
	}
	return res.Program
}

func TestSource(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let x = 1 + 2 * 3;", "let x = 1 + 2 * 3;\n"},
		{"let x = (1 + 2) * 3;", "let x = (1 + 2) * 3;\n"},
		{"let x = (1 - 2) - 3;", "let x = 1 - 2 - 3;\n"},
		{"let x = 1 - (2 - 3);", "let x = 1 - (2 - 3);\n"},
		{"let x = 1 % (2 | 3);", "let x = 1 % 2 | 3;\n"},
		{"let x = (1 % 2) | 3;", "let x = (1 % 2) | 3;\n"},
		{"let x = !(a && b);", "let x = !(a && b);\n"},
		{"let x = !(a == b);", "let x = !a == b;\n"},
		{"let x = (!a) == b;", "let x = (!a) == b;\n"},
		{"let x = (a + !b) == c;", "let x = (a + !b) == c;\n"},
		{"let x = (!a) && b;", "let x = !a && b;\n"},
		{"let x = -(a + b);", "let x = -(a + b);\n"},
		{"let x = - -a;", "let x = --a;\n"},
		{"let x = a - -b;", "let x = a - -b;\n"},
		{"let t = (1,);", "let t = (1,);\n"},
		{"let t = ( 1 , 2 , );", "let t = (1, 2);\n"},
		{"let u = ();", "let u = ();\n"},
		{"let xs = [1,2,3,];", "let xs = [1, 2, 3];\n"},
		{"let xs = [ 1 ];", "let xs = [1];\n"},
		{"let xs = [[1, 2], [], [[3]]];", "let xs = [[1, 2], [], [[3]]];\n"},
		{"let e = [];", "let e = [];\n"},
		{"let s = \"a\\\"b\";", "let s = \"a\\\"b\";\n"},
		{"let f = 1.;", "let f = 1.0;\n"},
		{"let n = 1_000;", "let n = 1000;\n"},
		{"fn add(a: i32, b: i32) -> i32 { a + b }", "fn add(a: i32, b: i32) -> i32 { a + b }\n"},
		{"fn main() -> void {}", "fn main() -> void {}\n"},
		{"fn main() -> void { let x = 1; x }", "fn main() -> void {\n\tlet x = 1;\n\tx\n}\n"},
		{"struct P { x: f64, y: f64, }", "struct P { x: f64, y: f64 }\n"},
		{"struct Unit {}", "struct Unit {}\n"},
		{"enum E { A, B, }", "enum E { A, B }\n"},
		{"let x = if a { 1 } else if b { 2 } else { 3 };", "let x = if a { 1 } else if b { 2 } else { 3 };\n"},
		{"let f = \\(x: i32) -> i32 { x * 2 };", "let f = \\(x: i32) -> i32 { x * 2 };\n"},
		{"let a = 1; let b = 2;", "let a = 1;\nlet b = 2;\n"},
		{"let a = 1; fn f() -> void {} let b = 2;", "let a = 1;\n\nfn f() -> void {}\n\nlet b = 2;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Source(mustParse(t, tt.input))
			if got != tt.expected {
				t.Errorf("expected:\n%q\ngot:\n%q", tt.expected, got)
			}
		})
	}
}

func TestSourceMultilineBodies(t *testing.T) {
	input := "struct Config { name: str, path: str, retries: u32, timeout: f64, verbose: bool, tags: [str] }"
	got := Source(mustParse(t, input))
	want := "struct Config {\n\tname: str,\n\tpath: str,\n\tretries: u32,\n\ttimeout: f64,\n\tverbose: bool,\n\ttags: [str],\n}\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestSourceLongList(t *testing.T) {
	input := "let big = [aaaaaaaaaa, bbbbbbbbbb, cccccccccc, dddddddddd, eeeeeeeeee, ffffffffff, gggggggggg, hhhhhhhhhh];"
	got := Source(mustParse(t, input))
	want := "let big = [\n" +
		"\taaaaaaaaaa,\n\tbbbbbbbbbb,\n\tcccccccccc,\n\tdddddddddd,\n" +
		"\teeeeeeeeee,\n\tffffffffff,\n\tgggggggggg,\n\thhhhhhhhhh,\n" +
		"];\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceRoundTrip(t *testing.T) {
	inputs := []string{
		"fn add(a: i32, b: i32) -> i32 { a + b }",
		"fn f(g: fn(i32, str) -> [u8], t: (i32, (bool, char)), u: (u8)) -> () { let x = g; x }",
		"struct Point { x: f64, y: f64 } enum Color { Red, Green, Blue }",
		"let x = 1 + 2 * 3 - 4 / 5 % 6 | 7 & 8 ^ 9 << 10 >> 11;",
		"let y = a || b && c == d != e >= f <= g > h < i |> j;",
		"let z = !a == !b && ~c + -d * +e;",
		"let w = (a + !b) == c; let v = -(-(a)); let u = !(a || b) && (!c || d);",
		"let p = a |> (b |> c); let q = (a == b) == c; let r = a == (b == c);",
		"let xs = [1, [2, 3], (4,), (5, 6), (), { 7 }, if a { 8 } else { 9 }];",
		"let f = \\(x: i32) -> i32 { if x > 0 { x } else if x < 0 { -x } else { 0 } };",
		"fn main() -> void { let a = { let b = 1; b + 1 }; { a; }; a }",
		"1; \"str\"; 'c'; true; 1.5; 340282366920938463463374607431768211455;",
		"let big = [aaaaaaaaaa, bbbbbbbbbb, cccccccccc, dddddddddd, eeeeeeeeee, ffffffffff, gggggggggg, hhhhhhhhhh];",
	}

	ignoreTokens := cmpopts.IgnoreTypes(lexer.Token{})
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, input)
			src := Source(first)
			second := mustParse(t, src)

			if diff := cmp.Diff(first, second, ignoreTokens); diff != "" {
				t.Errorf("tree changed after re-printing %q (-first +second):\n%s", src, diff)
			}
			if first.String() != second.String() {
				t.Errorf("inline rendering changed:\n%s\n%s", first, second)
			}
			if again := Source(second); again != src {
				t.Errorf("Source is not idempotent:\n%s\n%s", src, again)
			}
		})
	}
}

func TestTree(t *testing.T) {
	got := Tree(mustParse(t, "fn add(a: i32, b: i32) -> i32 { a + b }"))
	want := `Program
  FunctionStatement add
    Params
      a: i32
      b: i32
    ReturnType i32
    BlockExpression
      Tail
        BinaryExpression Add
          Identifier a
          Identifier b
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeIfAndLiterals(t *testing.T) {
	got := Tree(mustParse(t, "let x = if a { (1, 'c') } else { [] };"))
	want := `Program
  LetStatement x
    IfExpression
      Condition
        Identifier a
      BlockExpression
        Tail
          TupleLiteral (2)
            IntLiteral 1
            CharLiteral 'c'
      Else
        BlockExpression
          Tail
            ListLiteral (0)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	out, err := JSON(mustParse(t, "let x = -1;"))
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.HasPrefix(string(out), "{\n  \"kind\": \"Program\",") {
		t.Errorf("kind should come first:\n%s", out)
	}

	var doc struct {
		Statements []struct {
			Kind  string `json:"kind"`
			Name  string `json:"name"`
			Value struct {
				Kind string `json:"kind"`
				Op   string `json:"op"`
				RHS  struct {
					Value string `json:"value"`
				} `json:"rhs"`
			} `json:"value"`
		} `json:"statements"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(doc.Statements) != 1 {
		t.Fatalf("statements = %d", len(doc.Statements))
	}
	s := doc.Statements[0]
	if s.Kind != "LetStatement" || s.Name != "x" || s.Value.Kind != "UnaryExpression" || s.Value.Op != "Minus" || s.Value.RHS.Value != "1" {
		t.Errorf("unexpected document: %+v", s)
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML(mustParse(t, "enum E { A, B }"))
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	if !strings.HasPrefix(string(out), "kind: Program\n") {
		t.Errorf("kind should come first:\n%s", out)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	stmts, ok := doc["statements"].([]any)
	if !ok || len(stmts) != 1 {
		t.Fatalf("statements = %#v", doc["statements"])
	}
	enum := stmts[0].(map[string]any)
	if diff := cmp.Diff([]any{"A", "B"}, enum["variants"]); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestSpew(t *testing.T) {
	out := Spew(mustParse(t, "let x = 1;"))
	for _, want := range []string{"ast.LetStatement", `"x"`, "Statements"} {
		if !strings.Contains(out, want) {
			t.Errorf("spew output missing %q:\n%s", want, out)
		}
	}
}

func TestRender(t *testing.T) {
	prog := mustParse(t, "1 + 2;")
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, f, prog); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if buf.Len() == 0 {
				t.Errorf("no output")
			}
		})
	}

	var buf bytes.Buffer
	if err := Render(&buf, FormatInline, prog); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "(1 + 2);\n" {
		t.Errorf("inline = %q", got)
	}
	if err := Render(&buf, Format("xml"), prog); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil || !strings.Contains(err.Error(), "tree, inline") {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}

// an unterminated literal is marked with "!"
func TestTokens(t *testing.T) {
	src := "let x += \"a\nb"
	toks, _ := lexer.Tokenize(src)
	lines := strings.Split(strings.TrimSuffix(Tokens(src, toks), "\n"), "\n")

	want := [][]string{
		{"1:1", "LET", `"let"`},
		{"1:5", "IDENT", `"x"`},
		{"1:7", "OP_ASSIGN", "+", `"+="`},
		{"1:10", "LITERAL", "Str!", `"\"a\nb"`},
		{"2:2", "EOF", `""`},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for i, line := range lines {
		if diff := cmp.Diff(want[i], strings.Fields(line)); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
