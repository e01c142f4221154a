package models

import "strings"

// ProfileRecord holds the fields extracted from one faculty/staff
// profile page. Any field may be empty except the name pair: records
// without a name are never written.
type ProfileRecord struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Education string `json:"education"`
}

// CSVHeader is the fixed header row of the output file.
// The trailing space after Education matches the published format.
const CSVHeader = "Last Name,First Name,Email,Phone Number,Education "

// Row renders the record as one comma-joined CSV line, each field
// trimmed. Fields are not quote-escaped; the education blurb has its
// commas replaced at extraction time to keep columns aligned.
func (p ProfileRecord) Row() string {
	fields := []string{p.LastName, p.FirstName, p.Email, p.Phone, p.Education}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return strings.Join(fields, ",")
}

// LinkSet is the ordered sequence of absolute profile URLs collected
// from the index page. Duplicates from the source page are kept.
type LinkSet []string
