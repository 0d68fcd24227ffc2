package stdlib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/panyam/wea/runtime"
	"gopkg.in/yaml.v3"
)

// Data converts between values and JSON, YAML and TOML text.  Dict key
// order survives a JSON or YAML round trip.
func Data() Library {
	return NewLibrary("data",
		textIn("json_parse", parseJSON),
		textIn("yaml_parse", parseYAML),
		textIn("toml_parse", parseTOML),
		Native("json_stringify", 1, func(it *Interpreter, args []Value) (Value, error) {
			var buf bytes.Buffer
			if err := encodeJSON(&buf, args[0], containers{}); err != nil {
				return Null, err
			}
			return StringValue(buf.String()), nil
		}),
		Native("yaml_stringify", 1, func(it *Interpreter, args []Value) (Value, error) {
			node, err := toYAMLNode(args[0], containers{})
			if err != nil {
				return Null, err
			}
			out, err := yaml.Marshal(node)
			if err != nil {
				return Null, fmt.Errorf("%w: yaml_stringify: %v", runtime.ErrTypeMismatch, err)
			}
			return StringValue(string(out)), nil
		}),
	)
}

func textIn(name string, parse func(string) (Value, error)) *NativeFunc {
	return Native(name, 1, func(it *Interpreter, args []Value) (Value, error) {
		s, err := ExpectString(name, args, 0)
		if err != nil {
			return Null, err
		}
		v, err := parse(s)
		if err != nil {
			return Null, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
		}
		return v, nil
	})
}

func parseJSON(s string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	v, err := decodeJSON(dec)
	if err != nil {
		return Null, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null, errors.New("trailing data after value")
	}
	return v, nil
}

// decodeJSON walks the token stream so objects keep their key order.
func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return runtime.ToValue(tok)
	}
	switch delim {
	case '{':
		d := NewDict()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Null, err
			}
			v, err := decodeJSON(dec)
			if err != nil {
				return Null, err
			}
			d.Set(keyTok.(string), v)
		}
		_, err = dec.Token()
		return DictValue(d), err
	case '[':
		items := []Value{}
		for dec.More() {
			v, err := decodeJSON(dec)
			if err != nil {
				return Null, err
			}
			items = append(items, v)
		}
		_, err = dec.Token()
		return ListOf(items...), err
	}
	return Null, fmt.Errorf("unexpected %v", delim)
}

// containers holds the lists and dicts being encoded further up.  Meeting
// one again means the value contains itself.
type containers map[any]bool

func (c containers) enter(v Value) error {
	key := v.Value
	if c[key] {
		return fmt.Errorf("%w: %s contains itself", runtime.ErrTypeMismatch, v.Type)
	}
	c[key] = true
	return nil
}

func encodeJSON(buf *bytes.Buffer, v Value, open containers) error {
	switch v.Type {
	case runtime.ListType:
		if err := open.enter(v); err != nil {
			return err
		}
		defer delete(open, v.Value)
		buf.WriteByte('[')
		for i, item := range v.List().Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item, open); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case runtime.DictType:
		if err := open.enter(v); err != nil {
			return err
		}
		defer delete(open, v.Value)
		d := v.Dict()
		buf.WriteByte('{')
		for i, k := range d.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(k)
			buf.Write(key)
			buf.WriteByte(':')
			item, _ := d.Get(k)
			if err := encodeJSON(buf, item, open); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	plain, err := runtime.FromValue(v)
	if err != nil {
		return err
	}
	out, err := json.Marshal(plain)
	if err != nil {
		return fmt.Errorf("%w: json_stringify: %v", runtime.ErrTypeMismatch, err)
	}
	buf.Write(out)
	return nil
}

func parseYAML(s string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return Null, err
	}
	if doc.Kind == 0 {
		return Null, nil
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		d := NewDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return Null, err
			}
			d.Set(n.Content[i].Value, v)
		}
		return DictValue(d), nil
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, child := range n.Content {
			v, err := fromYAMLNode(child)
			if err != nil {
				return Null, err
			}
			items[i] = v
		}
		return ListOf(items...), nil
	}
	var scalar any
	if err := n.Decode(&scalar); err != nil {
		return Null, err
	}
	if t, ok := scalar.(time.Time); ok {
		return StringValue(t.Format(time.RFC3339)), nil
	}
	return runtime.ToValue(scalar)
}

func toYAMLNode(v Value, open containers) (*yaml.Node, error) {
	switch v.Type {
	case runtime.ListType:
		if err := open.enter(v); err != nil {
			return nil, err
		}
		defer delete(open, v.Value)
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.List().Items {
			child, err := toYAMLNode(item, open)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case runtime.DictType:
		if err := open.enter(v); err != nil {
			return nil, err
		}
		defer delete(open, v.Value)
		d := v.Dict()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range d.Keys() {
			item, _ := d.Get(k)
			child, err := toYAMLNode(item, open)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return n, nil
	}
	plain, err := runtime.FromValue(v)
	if err != nil {
		return nil, err
	}
	// Whole numbers are written as ints so they do not pick up a !!float tag
	if f, ok := plain.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		plain = int64(f)
	}
	n := &yaml.Node{}
	if err := n.Encode(plain); err != nil {
		return nil, err
	}
	return n, nil
}

func parseTOML(s string) (Value, error) {
	var doc map[string]any
	if _, err := toml.Decode(s, &doc); err != nil {
		return Null, err
	}
	return runtime.ToValue(flattenTimes(doc))
}

// flattenTimes replaces TOML datetimes with RFC 3339 strings.
func flattenTimes(in any) any {
	switch v := in.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case map[string]any:
		for k, item := range v {
			v[k] = flattenTimes(item)
		}
	case []any:
		for i, item := range v {
			v[i] = flattenTimes(item)
		}
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = flattenTimes(item)
		}
		return out
	}
	return in
}
