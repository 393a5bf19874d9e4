package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DetailSeparator separa los mensajes al aplanar listas y objetos.
const DetailSeparator = " | "

// FlattenDetail convierte un payload de error arbitrario en un solo texto.
// Strings pasan tal cual; listas se unen con DetailSeparator; objetos se rinden como
// "campo: mensaje" omitiendo nulos. Las claves non_field_errors y detail van sin prefijo.
// Para JSON crudo se respeta el orden de claves del backend.
func FlattenDetail(detail any) string {
	switch t := detail.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.RawMessage:
		return flattenRaw(t)
	case []byte:
		return flattenRaw(t)
	case error:
		return t.Error()
	case []string:
		parts := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, DetailSeparator)
	case []any:
		parts := make([]string, 0, len(t))
		for _, v := range t {
			if s := FlattenDetail(v); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, DetailSeparator)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := FlattenDetail(t[k]); s != "" {
				parts = append(parts, fieldEntry(k, s))
			}
		}
		return strings.Join(parts, DetailSeparator)
	case map[string][]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := FlattenDetail(t[k]); s != "" {
				parts = append(parts, fieldEntry(k, s))
			}
		}
		return strings.Join(parts, DetailSeparator)
	case bool, int, int64, float64, json.Number:
		return fmt.Sprint(t)
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return fmt.Sprint(detail)
	}
	return flattenRaw(b)
}

func fieldEntry(key, msg string) string {
	if key == "non_field_errors" || key == "detail" {
		return msg
	}
	return key + ": " + msg
}

func flattenRaw(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	s, err := flattenTokens(dec)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return s
}

func flattenTokens(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var parts []string
			for dec.More() {
				s, err := flattenTokens(dec)
				if err != nil {
					return "", err
				}
				if s != "" {
					parts = append(parts, s)
				}
			}
			if _, err := dec.Token(); err != nil {
				return "", err
			}
			return strings.Join(parts, DetailSeparator), nil
		case '{':
			var parts []string
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return "", err
				}
				key, _ := keyTok.(string)
				s, err := flattenTokens(dec)
				if err != nil {
					return "", err
				}
				if s != "" {
					parts = append(parts, fieldEntry(key, s))
				}
			}
			if _, err := dec.Token(); err != nil {
				return "", err
			}
			return strings.Join(parts, DetailSeparator), nil
		}
		return "", fmt.Errorf("delimitador inesperado %q", t)
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return fmt.Sprint(t), nil
	}
	return "", nil
}
