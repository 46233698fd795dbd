package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/datadeck/datadeck/internal/dataset"
)

// loadJSON normalizes a JSON file:
//   - top-level object: one Group per key (in document order); a sequence
//     value becomes the record sequence, anything else is wrapped in a
//     single-element sequence
//   - top-level array: a single anonymous Group
//   - anything else (bare scalar): ErrParse
//
// Objects decode through an insertion-ordered map so field order in records
// survives the round trip to JSON responses.
func loadJSON(path string) ([]Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, parseError(path, err)
	}

	head := bytes.TrimLeft(data, " \t\r\n")
	if len(head) == 0 {
		return nil, parseError(path, errors.New("empty file"))
	}

	switch head[0] {
	case '{':
		doc := orderedmap.New[string, any]()
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, parseError(path, err)
		}
		groups := make([]Group, 0, doc.Len())
		for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
			groups = append(groups, Group{Suffix: pair.Key, Records: jsonRecords(pair.Value)})
		}
		return groups, nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, parseError(path, err)
		}
		records := make([]dataset.Record, 0, len(elems))
		for _, el := range elems {
			v, err := decodeJSONValue(el)
			if err != nil {
				return nil, parseError(path, err)
			}
			records = append(records, jsonRecord(v))
		}
		return []Group{{Records: records}}, nil

	default:
		return nil, parseError(path, errors.New("top-level value must be an object or an array"))
	}
}

// decodeJSONValue unmarshals one JSON value, routing objects through an
// ordered map.
func decodeJSONValue(raw json.RawMessage) (any, error) {
	head := bytes.TrimLeft(raw, " \t\r\n")
	if len(head) > 0 && head[0] == '{' {
		om := orderedmap.New[string, any]()
		if err := json.Unmarshal(raw, om); err != nil {
			return nil, err
		}
		return om, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// jsonRecords converts a top-level key's value into a record sequence: a
// sequence maps element-wise, anything else becomes a one-element sequence.
func jsonRecords(v any) []dataset.Record {
	if seq, ok := v.([]any); ok {
		records := make([]dataset.Record, 0, len(seq))
		for _, el := range seq {
			records = append(records, jsonRecord(el))
		}
		return records
	}
	return []dataset.Record{jsonRecord(v)}
}

// jsonRecord shapes one sequence element as a Record. Objects normalize
// field-wise; scalar elements are wrapped under a "value" field so the
// Record contract holds for sequences of scalars.
func jsonRecord(v any) dataset.Record {
	if om, ok := v.(*orderedmap.OrderedMap[string, any]); ok {
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			om.Set(pair.Key, dataset.NormalizeValue(pair.Value))
		}
		return om
	}
	rec := dataset.NewRecord()
	rec.Set("value", dataset.NormalizeValue(v))
	return rec
}
