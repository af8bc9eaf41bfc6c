package report

import (
	"encoding/json"

	"github.com/patternscan/patternscan/internal/domain"
)

// JSON renders rep as indented JSON. Field names follow the classic report
// (total_patterns, patterns_by_type, matches, recommendations) with the
// project and commit added.
func JSON(rep *domain.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
