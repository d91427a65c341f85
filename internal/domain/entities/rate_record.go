package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ratewatch/medicaid-rates-backend/pkg/dates"
)

// FlexDate holds an effective date exactly as the source fee schedule
// serialized it: an M/D/YYYY string or a numeric spreadsheet serial. It is
// parsed only at the point of comparison, via pkg/dates.
type FlexDate string

// UnmarshalJSON accepts both string and numeric encodings.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*d = FlexDate(asString)
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*d = FlexDate(asNumber.String())
		return nil
	}

	// null or anything else collapses to "no date"
	*d = ""
	return nil
}

// MarshalJSON always emits the raw string form.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// Time parses the date, reporting ok=false when absent or unparseable.
func (d FlexDate) Time() (time.Time, bool) {
	return dates.Parse(string(d))
}

// RateRecord is one observed reimbursement rate for a billing code in a
// state, as aggregated from public fee schedules. ID is set only for rows
// sourced from the editable master table.
type RateRecord struct {
	ID                 string   `json:"id,omitempty" db:"id"`
	StateName          string   `json:"state_name" db:"state_name"`
	ServiceCategory    string   `json:"service_category" db:"service_category"`
	ServiceCode        string   `json:"service_code" db:"service_code"`
	ServiceDescription string   `json:"service_description" db:"service_description"`
	Program            string   `json:"program" db:"program"`
	LocationRegion     string   `json:"location_region" db:"location_region"`
	ProviderType       string   `json:"provider_type" db:"provider_type"`
	Modifier1          string   `json:"modifier_1" db:"modifier_1"`
	Modifier1Details   string   `json:"modifier_1_details" db:"modifier_1_details"`
	Modifier2          string   `json:"modifier_2" db:"modifier_2"`
	Modifier2Details   string   `json:"modifier_2_details" db:"modifier_2_details"`
	Modifier3          string   `json:"modifier_3" db:"modifier_3"`
	Modifier3Details   string   `json:"modifier_3_details" db:"modifier_3_details"`
	Modifier4          string   `json:"modifier_4" db:"modifier_4"`
	Modifier4Details   string   `json:"modifier_4_details" db:"modifier_4_details"`
	DurationUnit       string   `json:"duration_unit" db:"duration_unit"`
	Rate               string   `json:"rate" db:"rate"`
	RatePerHour        string   `json:"rate_per_hour,omitempty" db:"rate_per_hour"`
	RateEffectiveDate  FlexDate `json:"rate_effective_date" db:"rate_effective_date"`
}

// EffectiveDate parses the record's effective date.
func (r *RateRecord) EffectiveDate() (time.Time, bool) {
	return r.RateEffectiveDate.Time()
}

// RateValue parses the currency-prefixed rate string.
func (r *RateRecord) RateValue() (float64, bool) {
	return dates.ParseRate(r.Rate)
}

// SortValue returns the record's value for a sort key. Unknown keys sort as
// empty string, matching the null-lowest rule of the table sorter.
func (r *RateRecord) SortValue(key string) string {
	switch key {
	case "state_name":
		return r.StateName
	case "service_category":
		return r.ServiceCategory
	case "service_code":
		return r.ServiceCode
	case "service_description":
		return r.ServiceDescription
	case "program":
		return r.Program
	case "location_region":
		return r.LocationRegion
	case "provider_type":
		return r.ProviderType
	case "modifier_1":
		return r.Modifier1
	case "modifier_2":
		return r.Modifier2
	case "modifier_3":
		return r.Modifier3
	case "modifier_4":
		return r.Modifier4
	case "duration_unit":
		return r.DurationUnit
	case "rate":
		return strings.TrimPrefix(r.Rate, "$")
	case "rate_per_hour":
		return strings.TrimPrefix(r.RatePerHour, "$")
	case "rate_effective_date":
		return string(r.RateEffectiveDate)
	default:
		return ""
	}
}
