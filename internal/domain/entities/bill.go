package entities

import "encoding/json"

// SponsorList tolerates both encodings seen in the legislative feed: a JSON
// array of names or a single comma-joined string.
type SponsorList []string

// UnmarshalJSON accepts an array of strings or a bare string.
func (s *SponsorList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "" {
			*s = nil
			return nil
		}
		*s = []string{asString}
		return nil
	}

	*s = nil
	return nil
}

// Bill is a legislative record tracked for Medicaid policy relevance. URL is
// the natural key for edits and deletes.
type Bill struct {
	ID                    string      `json:"id" db:"id"`
	State                 string      `json:"state" db:"state"`
	BillNumber            string      `json:"bill_number" db:"bill_number"`
	Name                  string      `json:"name" db:"name"`
	LastAction            string      `json:"last_action" db:"last_action"`
	ActionDate            string      `json:"action_date" db:"action_date"`
	SponsorList           SponsorList `json:"sponsor_list" db:"sponsor_list"`
	BillProgress          string      `json:"bill_progress" db:"bill_progress"`
	URL                   string      `json:"url" db:"url"`
	ServiceLinesImpacted  string      `json:"service_lines_impacted" db:"service_lines_impacted"`
	ServiceLinesImpacted2 string      `json:"service_lines_impacted_1" db:"service_lines_impacted_1"`
	ServiceLinesImpacted3 string      `json:"service_lines_impacted_2" db:"service_lines_impacted_2"`
	ServiceLinesImpacted4 string      `json:"service_lines_impacted_3" db:"service_lines_impacted_3"`
	AISummary             string      `json:"ai_summary" db:"ai_summary"`
}
