package sanitize

import (
	"reflect"
	"testing"
)

func TestStringRemovesScriptBlocks(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"script block", `hello <script>alert("x")</script> world`, "hello  world"},
		{"script with attrs", `<script type="text/javascript">evil()</script>ok`, "ok"},
		{"mixed case", `<ScRiPt>evil()</sCrIpT>ok`, "ok"},
		{"unclosed script tag", `<script src="x.js">rest`, "rest"},
		{"split tag reassembly", `<scr<script></script>ipt>alert(1)</script>`, ""},
		{"iframe block", `before<iframe src="https://evil.test"></iframe>after`, "beforeafter"},
		{"inline handler double quoted", `<img src="x" onerror="alert(1)">`, `<img src="x" >`},
		{"inline handler single quoted", `<div onclick='go()'>hi</div>`, `<div >hi</div>`},
		{"inline handler unquoted", `<body onload=init()>`, `<body >`},
		{"javascript scheme", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{"javascript scheme spaced", `javascript : alert(1)`, "alert(1)"},
		{"data text html", `data:text/html,<h1>x</h1>`, ",<h1>x</h1>"},
		{"trims whitespace", "  plain text  ", "plain text"},
		{"plain text untouched", "Olá, quero participar", "Olá, quero participar"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := String(tc.input)
			if got != tc.want {
				t.Fatalf("String(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		`hello <script>alert("x")</script>`,
		`<scr<script></script>ipt>alert(1)</script>`,
		`<img src=x onerror="alert(1)"> javascript:void(0)`,
		`data:text/html;base64,AAAA`,
		"plain text with no html at all",
		"",
	}

	for _, input := range inputs {
		once := String(input)
		twice := String(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestValuePreservesShape(t *testing.T) {
	input := map[string]any{
		"name":    `<script>x</script>Maria`,
		"age":     float64(30),
		"active":  true,
		"nothing": nil,
		"tags":    []any{"a<iframe src=x></iframe>", float64(2), false},
		"nested": map[string]any{
			"note": "  javascript:alert(1)  ",
		},
	}

	want := map[string]any{
		"name":    "Maria",
		"age":     float64(30),
		"active":  true,
		"nothing": nil,
		"tags":    []any{"a", float64(2), false},
		"nested": map[string]any{
			"note": "alert(1)",
		},
	}

	got := Value(input)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Value() = %#v, want %#v", got, want)
	}
}

func TestValueNonContainerLeaves(t *testing.T) {
	if got := Value(float64(42)); got != float64(42) {
		t.Fatalf("number changed: %v", got)
	}
	if got := Value(true); got != true {
		t.Fatalf("bool changed: %v", got)
	}
	if got := Value(nil); got != nil {
		t.Fatalf("nil changed: %v", got)
	}
}
