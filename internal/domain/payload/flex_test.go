package payload

import (
	"encoding/json"
	"testing"
)

func TestTextAcceptsAnyShape(t *testing.T) {
	cases := []struct {
		in   string
		want Text
	}{
		{`"1) reach"`, "1) reach"},
		{`["1) reach","2) grasp"]`, "1) reach\n2) grasp"},
		{`["a",2,null]`, "a\n2\n"},
		{`null`, ""},
		{`12`, "12"},
		{`false`, "false"},
		{`{ "a" : 1 }`, `{"a":1}`},
	}
	for _, tc := range cases {
		var got Text
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.in, got, tc.want)
		}
	}

	b, err := json.Marshal(struct {
		Steps Text `json:"steps"`
	}{Steps: "a\nb"})
	if err != nil || string(b) != `{"steps":"a\nb"}` {
		t.Fatalf("marshal=%s err=%v", b, err)
	}
}

func TestNumberAcceptsNumericStrings(t *testing.T) {
	cases := []struct {
		in   string
		want Number
	}{
		{`5`, 5},
		{`"5"`, 5},
		{`" 2.5 "`, 2.5},
		{`"five"`, 0},
		{`"NaN"`, 0},
		{`true`, 0},
		{`null`, 0},
		{`[1]`, 0},
	}
	for _, tc := range cases {
		var got Number
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.in, got, tc.want)
		}
	}

	b, err := json.Marshal(struct {
		Min   Number `json:"min"`
		Index Number `json:"index"`
	}{Min: 2.5, Index: 3})
	if err != nil || string(b) != `{"min":2.5,"index":3}` {
		t.Fatalf("marshal=%s err=%v", b, err)
	}
}
