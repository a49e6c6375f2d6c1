package helm

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// ConfigHashKey is the annotation recording a short hash of the release
// values, so the effective configuration of a deployed release can be
// identified at a glance (helm get values).
const ConfigHashKey = "mernctl.dev/config-hash"

const managedByKey = "mernctl.dev/managed-by"

// hashLength is how many hex characters of the digest end up in the
// annotation.
const hashLength = 8

// AddConfigHash returns a copy of the release values with annotations
// identifying the tool and a hash of the configuration. Annotation and
// label keys are left out of the hash, so re-annotating unchanged values
// yields the same hash.
func AddConfigHash(values map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(values)+1)
	hashed := make(map[string]interface{}, len(values))
	for k, v := range values {
		out[k] = v
		if k != "annotations" && k != "labels" {
			hashed[k] = v
		}
	}

	annotations := map[string]interface{}{managedByKey: "mernctl"}
	if existing, ok := out["annotations"].(map[string]interface{}); ok {
		for k, v := range existing {
			annotations[k] = v
		}
	}

	if hash, err := configHash(hashed); err != nil {
		log.Error("Failed to hash release values", "error", err)
	} else {
		annotations[ConfigHashKey] = hash
		log.Debug("Added config hash to release values", "hash", hash)
	}

	out["annotations"] = annotations
	return out
}

// configHash digests the values through JSON, which serializes map keys in
// sorted order.
func configHash(values map[string]interface{}) (string, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum)[:hashLength], nil
}
