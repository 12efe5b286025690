package adapter

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// decodeBody converts response bytes to a string using the charset
// advertised in the Content-Type header, defaulting to UTF-8.
func decodeBody(contentType string, raw []byte) (string, error) {
	charset := "utf-8"
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			if cs := params["charset"]; cs != "" {
				charset = cs
			}
		}
	}

	if isUTF8Charset(charset) {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("response bytes are not valid %s", charset)
		}
		return string(raw), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s response: %w", charset, err)
	}
	return string(decoded), nil
}

func isUTF8Charset(charset string) bool {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	default:
		return false
	}
}

// parseJSON decodes text into a generic JSON value. Numbers stay
// json.Number so provider code controls numeric precision.
func parseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// jsonFromText implements the shared GetJSON contract: parse the text
// returned by GetText, surfacing a parse failure with the raw text in
// the diagnostic.
func jsonFromText(text string) (any, error) {
	v, err := parseJSON(text)
	if err != nil {
		return nil, NewParseError(
			fmt.Sprintf("could not deserialize response:\n%s", text), err)
	}
	return v, nil
}
