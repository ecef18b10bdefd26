package data

import (
	"encoding/json"
	"reflect"
	"strings"
)

// marshalWithExtra merges a struct's normally-tagged fields with a bag of
// fields the struct didn't recognize on parse, so unrecognized wire fields
// survive a parse -> serialize round trip unchanged (spec requirement:
// "unrecognized fields preserved verbatim").
func marshalWithExtra(known interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// unmarshalWithExtra decodes data into known (a pointer to an alias of the
// real struct, so this doesn't recurse into the real type's own
// UnmarshalJSON) and returns whatever top-level fields known's json tags
// don't account for.
func unmarshalWithExtra(data []byte, known interface{}) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, name := range jsonFieldNames(known) {
		delete(all, name)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// jsonFieldNames returns the wire names of the exported, json-tagged
// fields of the struct (or pointer to struct) v.
func jsonFieldNames(v interface{}) []string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
