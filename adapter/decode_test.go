package adapter

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeBody_DefaultUTF8(t *testing.T) {
	got, err := decodeBody("", []byte("plain text, no content type"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain text, no content type" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeBody_CharsetParameter(t *testing.T) {
	// 0xE9 is é in Latin-1 but an invalid byte sequence in UTF-8.
	raw := []byte{'c', 'a', 'f', 0xE9}

	got, err := decodeBody("text/plain; charset=iso-8859-1", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "café" {
		t.Errorf("got %q, want %q", got, "café")
	}
}

func TestDecodeBody_InvalidUTF8(t *testing.T) {
	_, err := decodeBody("text/plain; charset=utf-8", []byte{0xFF, 0xFE, 0xFD})
	if err == nil {
		t.Fatal("expected an error for invalid UTF-8 bytes")
	}
}

func TestDecodeBody_UnknownCharset(t *testing.T) {
	_, err := decodeBody("text/plain; charset=klingon", []byte("x"))
	if err == nil {
		t.Fatal("expected an error for an unknown charset")
	}
	if !strings.Contains(err.Error(), "klingon") {
		t.Errorf("error should name the charset, got %v", err)
	}
}

func TestDecodeBody_CharsetCaseInsensitive(t *testing.T) {
	got, err := decodeBody("application/json; charset=UTF-8", []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("got %q", got)
	}
}

func TestParseJSON_NumbersStayPrecise(t *testing.T) {
	v, err := parseJSON(`{"lat": 52.5170365, "osm_id": 240109189}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	lat, ok := obj["lat"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", obj["lat"])
	}
	if lat.String() != "52.5170365" {
		t.Errorf("lat = %s, want the exact source digits", lat)
	}
}

func TestParseJSON_TopLevelArray(t *testing.T) {
	v, err := parseJSON(`[{"display_name": "Berlin"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("expected one-element array, got %#v", v)
	}
}

func TestJSONFromText_ParseFailureCarriesRawText(t *testing.T) {
	_, err := jsonFromText("<html><body>Service Unavailable</body></html>")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !IsParse(err) {
		t.Fatalf("expected parse kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "<html>") {
		t.Errorf("diagnostic should include the raw text, got %q", err.Error())
	}
}
