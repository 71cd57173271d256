package lessonplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Entry is a single key/value pair of a mapping, in document order.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// TextOrMapping holds a field that the generator returns either as plain text
// or as an object whose values may be any JSON.
type TextOrMapping struct {
	text      string
	entries   []Entry
	isMapping bool
}

func NewText(text string) *TextOrMapping {
	return &TextOrMapping{text: text}
}

func NewMapping(entries ...Entry) *TextOrMapping {
	return &TextOrMapping{entries: entries, isMapping: true}
}

// IsPresent reports whether the value has anything to render.
// An empty text and an empty mapping are both treated as absent.
func (v *TextOrMapping) IsPresent() bool {
	if v == nil {
		return false
	}
	if v.isMapping {
		return len(v.entries) > 0
	}
	return v.text != ""
}

// IsZero lets omitzero and yaml omitempty drop absent values.
func (v *TextOrMapping) IsZero() bool {
	return !v.IsPresent()
}

func (v *TextOrMapping) IsMapping() bool {
	return v != nil && v.isMapping
}

func (v *TextOrMapping) Text() string {
	if v == nil {
		return ""
	}
	return v.text
}

func (v *TextOrMapping) Entries() []Entry {
	if v == nil {
		return nil
	}
	return v.entries
}

func (v *TextOrMapping) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = TextOrMapping{}
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("json.Unmarshal(text) > %w", err)
		}
		*v = TextOrMapping{text: text}
	case '{':
		entries, err := decodeObjectEntries(data)
		if err != nil {
			return err
		}
		*v = TextOrMapping{entries: entries, isMapping: true}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("json.Unmarshal(array) > %w", err)
		}
		entries := make([]Entry, 0, len(items))
		for i, item := range items {
			entries = append(entries, Entry{Key: strconv.Itoa(i), Value: item})
		}
		*v = TextOrMapping{entries: entries, isMapping: true}
	default:
		// false and zero are absent, other numbers and true keep their literal
		if isFalsyLiteral(data) {
			*v = TextOrMapping{}
			return nil
		}
		*v = TextOrMapping{text: string(data)}
	}
	return nil
}

func isFalsyLiteral(data []byte) bool {
	if bytes.Equal(data, []byte("false")) {
		return true
	}
	number, err := strconv.ParseFloat(string(data), 64)
	return err == nil && number == 0
}

// decodeObjectEntries keeps the key order of the object, which a map would lose.
func decodeObjectEntries(data []byte) ([]Entry, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token(open) > %w", err)
	}

	var entries []Entry
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token(key) > %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoder.Decode(%s) > %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token(close) > %w", err)
	}
	return entries, nil
}

func (v TextOrMapping) MarshalJSON() ([]byte, error) {
	if !v.isMapping {
		return json.Marshal(v.text)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range v.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal(%s) > %w", entry.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(entry.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(entry.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v TextOrMapping) MarshalYAML() (interface{}, error) {
	if !v.isMapping {
		return v.text, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range v.entries {
		var value interface{}
		if len(entry.Value) > 0 {
			if err := json.Unmarshal(entry.Value, &value); err != nil {
				return nil, fmt.Errorf("json.Unmarshal(%s) > %w", entry.Key, err)
			}
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("yaml.Node.Encode(%s) > %w", entry.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
			valueNode,
		)
	}
	return node, nil
}
