package jobscore

import "strings"

// Posting is a job advert split into the fields the model was trained on.
type Posting struct {
	Title          string
	Company        string
	Description    string
	Requirements   string
	Benefits       string
	Location       string
	Salary         string
	EmploymentType string
	Industry       string
}

// Text joins the fields in training order with single spaces. Empty fields
// keep their separator; tokenization ignores the extra spaces.
func (p Posting) Text() string {
	return strings.TrimSpace(strings.Join([]string{
		p.Title,
		p.Company,
		p.Description,
		p.Requirements,
		p.Benefits,
		p.Location,
		p.Salary,
		p.EmploymentType,
		p.Industry,
	}, " "))
}
