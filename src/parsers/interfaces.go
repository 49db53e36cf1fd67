package parsers

import (
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/utils"
)

// RowClassifier turns the data rows of one platform export into
// ClassifiedRows. Implementations are stateless and safe for concurrent use.
type RowClassifier interface {
	Platform() models.Platform
	Schema() columns.Schema
	Labels() models.LabelRegistry
	// Classify returns the classified rows in file order plus row-level
	// warnings. Product names are filled in later by the code resolver.
	Classify(rows []models.RawRow, cols columns.Resolved, cells *utils.CellParser) ([]models.ClassifiedRow, []string)
}
