package response

import "ges_billing/internal/domain/entities"

type DepartmentResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Floor   string `json:"floor"`
	Section string `json:"section"`
	Source  bool   `json:"source"`
}

func FromDepartments(ds []entities.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(ds))
	for i, d := range ds {
		out[i] = DepartmentResponse{Code: d.Code, Name: d.Name, Floor: d.Floor, Section: d.Section, Source: d.IsSource()}
	}
	return out
}
