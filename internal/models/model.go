// Package models defines the persisted entities of the patent certificate
// service and the AppData aggregate that holds all of them.
//
// JSON tags follow the layout of previously persisted documents exactly, so
// a document written by an earlier deployment loads unchanged.
package models

import "time"

// Role distinguishes the administrator account from enterprise users.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is a registered account. Credits form the prepaid balance that
// certificate payments are debited from.
//
// Password holds either a legacy plaintext credential (from documents written
// by earlier deployments) or a bcrypt hash; the auth package decides which.
type User struct {
	ID          string `json:"id"`
	UserName    string `json:"username"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	Credits     int    `json:"credits"`
	Role        Role   `json:"role"`
}

// Project is a purchasable usage type with a credit cost.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// PatentConfig is the singleton patent metadata printed on certificates.
type PatentConfig struct {
	PatentName    string `json:"patentName"`
	PatentNo      string `json:"patentNo"`
	BackgroundURL string `json:"backgroundUrl"`
}

// Certificate records one issued usage certificate. All referenced fields
// (project name, patent metadata, applicant company) are snapshotted at
// issuance and never change afterwards; only IsPaid transitions, once,
// from false to true.
type Certificate struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	ProjectID     string `json:"projectId"`
	ProjectName   string `json:"projectName"`
	PatentName    string `json:"patentName"`
	PatentNo      string `json:"patentNo"`
	ApplicantName string `json:"applicantName"`
	IssueDate     string `json:"issueDate"`
	IsPaid        bool   `json:"isPaid"`
}

// AppData is the aggregate: the single document every mutation replaces
// wholesale and the store persists as one JSON value.
//
// CurrentUser is retained for document compatibility only. It is always
// written as null and never consulted for authorization; session identity
// lives with the auth gate.
type AppData struct {
	CurrentUser  *User         `json:"currentUser"`
	Users        []User        `json:"users"`
	Projects     []Project     `json:"projects"`
	Certificates []Certificate `json:"certificates"`
	Config       PatentConfig  `json:"config"`
}

// FormatIssueDate renders an issuance timestamp the way the persisted
// document stores it (RFC 3339 / ISO-8601, UTC).
func FormatIssueDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Clone returns a deep copy of the aggregate. Mutating the copy never
// affects the original; this backs the read-modify-replace discipline of
// the repository.
func (d *AppData) Clone() *AppData {
	c := &AppData{
		Users:        make([]User, len(d.Users)),
		Projects:     make([]Project, len(d.Projects)),
		Certificates: make([]Certificate, len(d.Certificates)),
		Config:       d.Config,
	}
	copy(c.Users, d.Users)
	copy(c.Projects, d.Projects)
	copy(c.Certificates, d.Certificates)
	if d.CurrentUser != nil {
		u := *d.CurrentUser
		c.CurrentUser = &u
	}
	return c
}

// UserByID returns the user with the given id, or nil.
func (d *AppData) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByName returns the user with the given login name, or nil.
func (d *AppData) UserByName(username string) *User {
	for i := range d.Users {
		if d.Users[i].UserName == username {
			return &d.Users[i]
		}
	}
	return nil
}

// ProjectByID returns the project with the given id, or nil.
func (d *AppData) ProjectByID(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// CertificateByID returns the first certificate with the given id together
// with the total number of certificates sharing that id. A count above one
// indicates an identifier collision in a document written by an earlier
// deployment; callers decide how to report it.
func (d *AppData) CertificateByID(id string) (*Certificate, int) {
	var first *Certificate
	matches := 0
	for i := range d.Certificates {
		if d.Certificates[i].ID == id {
			if first == nil {
				first = &d.Certificates[i]
			}
			matches++
		}
	}
	return first, matches
}
