package stores

import (
	"encoding/json"
	"fmt"

	"genchat/models"
)

// marshalSnapshot maps every message to its persistable shape and encodes
// the ordered list. Video resource handles are dropped here; they are only
// valid inside the session that produced them.
func marshalSnapshot(msgs []models.Message) (string, error) {
	persisted := make([]models.PersistedMessage, 0, len(msgs))
	for _, m := range msgs {
		persisted = append(persisted, m.ToPersisted())
	}

	raw, err := json.Marshal(persisted)
	if err != nil {
		return "", fmt.Errorf("failed to marshal history snapshot: %w", err)
	}
	return string(raw), nil
}

// unmarshalSnapshot decodes a stored snapshot back into messages, in the
// stored order.
func unmarshalSnapshot(snapshotJSON string) ([]models.Message, error) {
	if snapshotJSON == "" || snapshotJSON == "null" {
		return nil, nil
	}

	var persisted []models.PersistedMessage
	if err := json.Unmarshal([]byte(snapshotJSON), &persisted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history snapshot: %w", err)
	}

	msgs := make([]models.Message, 0, len(persisted))
	for _, p := range persisted {
		msgs = append(msgs, p.ToMessage())
	}
	return msgs, nil
}
