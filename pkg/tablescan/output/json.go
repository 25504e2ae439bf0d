// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// ToJSON serializes a TableData.
func ToJSON(data *models.TableData, pretty bool) ([]byte, error) {
	return marshal(data, pretty)
}

// CellToJSON serializes a single located cell.
func CellToJSON(cell *models.CellResult, pretty bool) ([]byte, error) {
	return marshal(cell, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
