package maintenance

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Column names read from a sheet row. Any other column is ignored.
const (
	FieldStatus       = "Status"
	FieldMachineName  = "Machine Name"
	FieldMachineID    = "Machine ID"
	FieldServiceType  = "Service Type"
	FieldDueDate      = "Upcoming Maintenance Date"
	FieldRemarks      = "Remarks/Logs"
	FieldContactPhone = "ContactPhone"
	FieldPhone        = "Phone"
	FieldUrgent       = "_urgent"
)

// Row is a single spreadsheet row keyed by column name, as posted by the
// sheet automation. Decode it with json.Decoder.UseNumber so numeric cells
// keep their original text.
type Row map[string]any

// Get returns the cell rendered as text. The bool is false when the column
// is absent or null.
func (r Row) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x), true
		}
		return string(b), true
	}
}

// Text returns the cell as text, or "" when it is missing.
func (r Row) Text(field string) string {
	s, _ := r.Get(field)
	return s
}

// Flag reports whether the cell holds a truthy value: true, a non-zero
// number, a non-empty string, list or object. Any non-empty string counts,
// "false" and "0" included.
func (r Row) Flag(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
