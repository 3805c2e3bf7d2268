package event

import "encoding/json"

// DecodePayload converts an event payload into its typed form. Payloads
// published through the in-process MemoryBus arrive as the concrete struct
// and the type assertion is enough; payloads replayed from the dead-letter
// file arrive as map[string]interface{} and take the JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
