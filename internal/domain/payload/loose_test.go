package payload

import (
	"encoding/json"
	"testing"
)

func TestLooseText(t *testing.T) {
	var in struct {
		S    Loose `json:"s"`
		N    Loose `json:"n"`
		F    Loose `json:"f"`
		B    Loose `json:"b"`
		Null Loose `json:"null"`
		Obj  Loose `json:"obj"`
		Arr  Loose `json:"arr"`
		Miss Loose `json:"miss"`
	}
	body := `{"s":"sleep \"better\"","n":7,"f":6.5,"b":true,"null":null,"obj":{ "a" : [1, 2] },"arr":[ "x", 1 ]}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"string", in.S.Text(""), `sleep "better"`},
		{"int", in.N.Text("null"), "7"},
		{"float", in.F.Text("null"), "6.5"},
		{"bool", in.B.Text(""), "true"},
		{"explicit null is present", in.Null.Text(""), "null"},
		{"object", in.Obj.Text(""), `{"a":[1,2]}`},
		{"array", in.Arr.Text(""), `["x",1]`},
		{"missing uses default", in.Miss.Text("null"), "null"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.name, tc.got, tc.want)
		}
	}
	if !in.Null.Present() || in.Miss.Present() {
		t.Fatalf("presence: null=%v miss=%v", in.Null.Present(), in.Miss.Present())
	}
}

func TestLooseJSON(t *testing.T) {
	var missing Loose
	if got := string(missing.JSON("{}")); got != "{}" {
		t.Fatalf("missing=%q", got)
	}
	if got := string(L("hi").JSON(`""`)); got != `"hi"` {
		t.Fatalf("string=%q", got)
	}
	b, err := json.Marshal(struct {
		Intent Loose `json:"intent"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"intent":null}` {
		t.Fatalf("marshal=%s", b)
	}
}
