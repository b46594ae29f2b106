package maintenance

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the action a row calls for. The zero value means no action.
type Category string

const (
	CategoryNone    Category = ""
	CategoryUrgent  Category = "urgent"
	CategoryDueSoon Category = "due_soon"
)

// Actionable reports whether the category triggers a notification.
func (c Category) Actionable() bool {
	return c == CategoryUrgent || c == CategoryDueSoon
}

// ErrMissingRecipient is returned when neither the row nor the
// configuration provides a destination address.
var ErrMissingRecipient = errors.New("no recipient phone found (set ContactPhone or ADMIN_PHONE)")

// Decision is the outcome of evaluating one row.
type Decision struct {
	Category Category
	Body     string
}

// Classify maps a row to its action category. An explicit _urgent flag or
// an "overdue" status wins over "due soon".
func Classify(row Row) Category {
	status := strings.ToLower(strings.TrimSpace(row.Text(FieldStatus)))
	if row.Flag(FieldUrgent) || status == "overdue" {
		return CategoryUrgent
	}
	if status == "due soon" {
		return CategoryDueSoon
	}
	return CategoryNone
}

// Compose renders the alert text for an actionable category. It returns ""
// for CategoryNone.
func Compose(row Row, category Category) string {
	machine := machineLabel(row)
	switch category {
	case CategoryUrgent:
		return fmt.Sprintf("⚠️ URGENT: %s requires maintenance (Overdue).\nService: %s\nDue: %s\nRemarks: %s",
			machine, row.Text(FieldServiceType), row.Text(FieldDueDate), row.Text(FieldRemarks))
	case CategoryDueSoon:
		return fmt.Sprintf("Reminder: %s maintenance due on %s\nService: %s\nPlease schedule.",
			machine, row.Text(FieldDueDate), row.Text(FieldServiceType))
	default:
		return ""
	}
}

// Evaluate classifies the row and, when actionable, composes its message.
func Evaluate(row Row) Decision {
	c := Classify(row)
	if !c.Actionable() {
		return Decision{}
	}
	return Decision{Category: c, Body: Compose(row, c)}
}

// ResolveRecipient picks the destination: ContactPhone, then Phone, then
// the configured fallback. Blank values are skipped.
func ResolveRecipient(row Row, fallback string) (string, error) {
	for _, candidate := range []string{row.Text(FieldContactPhone), row.Text(FieldPhone), fallback} {
		if to := strings.TrimSpace(candidate); to != "" {
			return to, nil
		}
	}
	return "", ErrMissingRecipient
}

// machineLabel falls back to "Unknown" only when the name column is absent
// or null; a blank cell is rendered as is.
func machineLabel(row Row) string {
	name, ok := row.Get(FieldMachineName)
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("%s (%s)", name, row.Text(FieldMachineID))
}
