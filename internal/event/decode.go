package event

import "encoding/json"

// DecodePayload converts an event payload into T.
// In-process events already carry T; payloads that went through JSON (dead
// letters, NATS) arrive as maps and are re-decoded.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	if v, ok := input.(*T); ok && v != nil {
		return *v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
