package main

import (
	"testing"

	"github.com/paularlott/toon"
	"github.com/paularlott/toon/bsonval"
)

func TestEncodeInputJSON(t *testing.T) {
	opts, err := encodeOptions("pipe", 2, "#")
	if err != nil {
		t.Fatal(err)
	}
	got, err := encodeInput([]byte(`{"tags":["a","b"],"n":1}`), "json", opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "tags[#2|]: a|b\nn: 1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeInputBSON(t *testing.T) {
	data, err := bsonval.Marshal(toon.Object{{Key: "id", Value: toon.Int(7)}})
	if err != nil {
		t.Fatal(err)
	}
	opts, _ := encodeOptions("comma", 2, "")
	got, err := encodeInput(data, "bson", opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != "id: 7" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeInput(t *testing.T) {
	opts, _ := decodeOptions("", false, false)
	got, err := decodeInput("a: 1\nb[2]: x,y", "json", opts, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1,"b":["x","y"]}`+"\n" {
		t.Errorf("got %s", got)
	}

	got, err = decodeInput("a: 1", "json", opts, true)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{\n  \"a\": 1\n}\n" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeInputNoCoerce(t *testing.T) {
	opts, _ := decodeOptions("", false, true)
	got, err := decodeInput("a: 1\nb: 12345678901234567890", "json", opts, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1,"b":"12345678901234567890"}`+"\n" {
		t.Errorf("got %s", got)
	}
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"bad delimiter", func() error { _, err := encodeOptions("semicolon", 2, ""); return err }},
		{"zero indent", func() error { _, err := encodeOptions("comma", 0, ""); return err }},
		{"long marker", func() error { _, err := encodeOptions("comma", 2, "##"); return err }},
		{"bad decode delimiter", func() error { _, err := decodeOptions(";", false, false); return err }},
		{"bad input format", func() error {
			opts, _ := encodeOptions("comma", 2, "")
			_, err := encodeInput([]byte("{}"), "yaml", opts)
			return err
		}},
		{"bad output format", func() error {
			opts, _ := decodeOptions("", false, false)
			_, err := decodeInput("a: 1", "yaml", opts, false)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() == nil {
				t.Error("expected error")
			}
		})
	}
}
