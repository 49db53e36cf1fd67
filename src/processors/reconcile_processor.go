package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/username/salesfolio/backend/src/models"
)

type reconcileProcessorImpl struct{}

func NewReconcileProcessor() ReconcileProcessor {
	return &reconcileProcessorImpl{}
}

// Process keeps one row per composite key. A later row replaces an earlier
// one outright and takes its position in the output, so the result follows
// file order of the surviving rows. Every kept row gets its HashID.
func (p *reconcileProcessorImpl) Process(rows []models.ClassifiedRow) ([]models.ClassifiedRow, int) {
	index := make(map[string]int, len(rows))
	kept := make([]models.ClassifiedRow, 0, len(rows))
	removed := 0

	for _, row := range rows {
		key := CompositeKey(row)
		row.HashID = generateHash(key)
		if i, dup := index[key]; dup {
			kept[i] = row
			removed++
			continue
		}
		index[key] = len(kept)
		kept = append(kept, row)
	}
	return kept, removed
}

// CompositeKey is the batch and storage identity of a row.
func CompositeKey(row models.ClassifiedRow) string {
	return fmt.Sprintf("%s|%s|%s|%s", row.Platform, row.ExternalID, row.ProductCode, row.Disposition.RecordType())
}

// generateHash creates the storage upsert key for a composite key.
func generateHash(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}
