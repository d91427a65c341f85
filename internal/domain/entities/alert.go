package entities

// Alert is a provider-facing notice of a policy or rate change. Link doubles
// as the natural key for edits and deletes.
type Alert struct {
	Subject               string `json:"subject" db:"subject"`
	AnnouncementDate      string `json:"announcement_date" db:"announcement_date"`
	State                 string `json:"state" db:"state"`
	Link                  string `json:"link" db:"link"`
	ServiceLinesImpacted  string `json:"service_lines_impacted" db:"service_lines_impacted"`
	ServiceLinesImpacted2 string `json:"service_lines_impacted_1" db:"service_lines_impacted_1"`
	ServiceLinesImpacted3 string `json:"service_lines_impacted_2" db:"service_lines_impacted_2"`
	ServiceLinesImpacted4 string `json:"service_lines_impacted_3" db:"service_lines_impacted_3"`
	Summary               string `json:"summary" db:"summary"`
}

// ServiceLineUpdate carries a reclassification of the free-text service line
// slots, keyed by the record's natural key.
type ServiceLineUpdate struct {
	Key   string  `json:"key"`
	Line1 *string `json:"service_lines_impacted"`
	Line2 *string `json:"service_lines_impacted_1"`
	Line3 *string `json:"service_lines_impacted_2"`
	Line4 *string `json:"service_lines_impacted_3"`
}
