package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabelCount is one entry of a CountMap.
type LabelCount struct {
	Label string
	Count int
}

// CountMap is a label-to-count mapping that keeps the key order of the
// JSON document it was decoded from. Status, type and assignee labels are
// free text coming from Jira, and their document order decides the render
// order of chart slices and bars, so a plain map would lose information.
// The zero value is an empty map ready for use.
type CountMap struct {
	entries []LabelCount
	index   map[string]int
}

// Add increases the count for label by n, appending the label at the end
// when it is new.
func (m *CountMap) Add(label string, n int) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[label]; ok {
		m.entries[i].Count += n
		return
	}
	m.index[label] = len(m.entries)
	m.entries = append(m.entries, LabelCount{Label: label, Count: n})
}

// Get returns the count for label, or zero when the label is absent.
func (m *CountMap) Get(label string) int {
	if m.index == nil {
		return 0
	}
	if i, ok := m.index[label]; ok {
		return m.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct labels.
func (m *CountMap) Len() int {
	return len(m.entries)
}

// Labels returns the labels in insertion order.
func (m *CountMap) Labels() []string {
	labels := make([]string, len(m.entries))
	for i, e := range m.entries {
		labels[i] = e.Label
	}
	return labels
}

// Values returns the counts in insertion order.
func (m *CountMap) Values() []int {
	values := make([]int, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.Count
	}
	return values
}

// Entries returns a copy of the label/count pairs in insertion order.
func (m *CountMap) Entries() []LabelCount {
	out := make([]LabelCount, len(m.entries))
	copy(out, m.entries)
	return out
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (m CountMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token so key order survives.
// null decodes to an empty map; duplicate keys accumulate.
func (m *CountMap) UnmarshalJSON(data []byte) error {
	m.entries = nil
	m.index = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("countmap: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("countmap: unexpected key token %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("countmap: value for %q: %w", key, err)
		}
		m.Add(key, count)
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}
