package journal

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/simple-dapp/simple-dapp-go/pkg/types"
)

const (
	KeyPrefixEvent       = "event:"
	KeySchemaVersion     = "metadata:schema_version"
	CurrentSchemaVersion = "v1"
)

// EventKey is the storage key of an event. Numbers are zero padded so that the
// lexical order of keys is the chain order of the logs.
func EventKey(blockNumber uint64, logIndex uint) string {
	return fmt.Sprintf("%s%020d:%06d", KeyPrefixEvent, blockNumber, logIndex)
}

// MarshalContractEvent serializes a ContractEvent to JSON bytes.
func MarshalContractEvent(event *types.ContractEvent) ([]byte, error) {
	if event == nil {
		return nil, fmt.Errorf("cannot marshal nil ContractEvent")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ContractEvent to JSON: %w", err)
	}
	return data, nil
}

// UnmarshalContractEvent deserializes a ContractEvent from JSON bytes.
func UnmarshalContractEvent(data []byte) (*types.ContractEvent, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var event types.ContractEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to ContractEvent: %w", err)
	}
	return &event, nil
}

// SortEvents orders events by block number then log index.
func SortEvents(events []*types.ContractEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})
}
