package entities

import "strings"

// SourceDepartmentCode identifies the building master meter. Its reading
// supplies the amount to distribute and it is never billed.
const SourceDepartmentCode = "GENERAL"

// Department is a billable unit of the building (or the GENERAL meter).
type Department struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Floor   string `json:"floor"`
	Section string `json:"section"`
}

// IsSource reports whether the department is the aggregate source meter.
func (d Department) IsSource() bool {
	return d.Code == SourceDepartmentCode
}

var departments = []Department{
	{Code: "PB-A", Name: "PB - A", Floor: "PB", Section: "A"},
	{Code: "1-A", Name: "1 - A", Floor: "1", Section: "A"},
	{Code: "2-A", Name: "2 - A", Floor: "2", Section: "A"},
	{Code: "3-A", Name: "3 - A", Floor: "3", Section: "A"},
	{Code: "4-A", Name: "4 - A", Floor: "4", Section: "A"},
	{Code: "5-A", Name: "5 - A", Floor: "5", Section: "A"},
	{Code: "6-A", Name: "6 - A", Floor: "6", Section: "A"},
	{Code: "PB-B", Name: "PB - B", Floor: "PB", Section: "B"},
	{Code: "1-B", Name: "1 - B", Floor: "1", Section: "B"},
	{Code: "2-B", Name: "2 - B", Floor: "2", Section: "B"},
	{Code: "3-B", Name: "3 - B", Floor: "3", Section: "B"},
	{Code: "4-B", Name: "4 - B", Floor: "4", Section: "B"},
	{Code: "5-B", Name: "5 - B", Floor: "5", Section: "B"},
	{Code: "6-B", Name: "6 - B", Floor: "6", Section: "B"},
	{Code: SourceDepartmentCode, Name: "General", Floor: "General", Section: "General"},
}

// Departments returns the building catalog in display order.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// FindDepartment looks a department up by code (case-insensitive).
func FindDepartment(code string) (Department, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, d := range departments {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}
