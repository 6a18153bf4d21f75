package llm

import "testing"

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"name":"Ram Singh"}`, `{"name":"Ram Singh"}`},
		{"json fence", "```json\n{\"name\":\"Ram Singh\"}\n```", `{"name":"Ram Singh"}`},
		{"plain fence", "```\n{\"name\":null}\n```", `{"name":null}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"fence without newline", "```json{\"a\":1}```", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestMalformedOutputErrorKeepsRaw(t *testing.T) {
	err := &MalformedOutputError{Raw: "sorry, I cannot"}
	if err.Raw != "sorry, I cannot" {
		t.Fatalf("raw lost")
	}
	if err.Error() == "" {
		t.Fatalf("empty error message")
	}
}
