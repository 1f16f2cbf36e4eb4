// Package resume defines the canonical in-memory résumé document model.
// A Document is the single root aggregate edited by the user: singleton
// personal info and skills fields plus ordered lists of repeated records.
package resume

import "github.com/google/uuid"

// PersonalInfo holds the singleton contact and summary fields.
// Every field is optional and defaults to the empty string.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Summary  string `json:"summary"`
}

// WorkExperience is one job entry. The ID is opaque and used only for
// list addressing; it is never shown to the user.
type WorkExperience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description Lines  `json:"description"`
}

// Education is one degree entry.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa"`
}

// Project is one project entry.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description Lines  `json:"description"`
	Link        string `json:"link"`
}

// AchievementCertification is one achievement or certification entry.
type AchievementCertification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Document is the root résumé aggregate. Lists preserve insertion order;
// order matters only for display. Skills is a free-text comma-separated
// string by convention and is never parsed or validated.
type Document struct {
	PersonalInfo               PersonalInfo               `json:"personalInfo"`
	WorkExperience             []WorkExperience           `json:"workExperience"`
	Education                  []Education                `json:"education"`
	Skills                     string                     `json:"skills"`
	Projects                   []Project                  `json:"projects"`
	AchievementsCertifications []AchievementCertification `json:"achievementsCertifications"`
}

// NewID generates a fresh opaque record identifier.
func NewID() string {
	return uuid.New().String()
}

// NewDocument returns a seeded Document with one empty record in each
// repeated list, matching the state the editor starts from.
func NewDocument() *Document {
	return &Document{
		WorkExperience:             []WorkExperience{{ID: NewID()}},
		Education:                  []Education{{ID: NewID()}},
		Projects:                   []Project{{ID: NewID()}},
		AchievementsCertifications: []AchievementCertification{{ID: NewID()}},
	}
}

// EnsureIDs assigns a fresh identifier to every repeated record whose ID
// is missing or empty. Identifiers already present are preserved as-is.
func (d *Document) EnsureIDs() {
	for i := range d.WorkExperience {
		if d.WorkExperience[i].ID == "" {
			d.WorkExperience[i].ID = NewID()
		}
	}
	for i := range d.Education {
		if d.Education[i].ID == "" {
			d.Education[i].ID = NewID()
		}
	}
	for i := range d.Projects {
		if d.Projects[i].ID == "" {
			d.Projects[i].ID = NewID()
		}
	}
	for i := range d.AchievementsCertifications {
		if d.AchievementsCertifications[i].ID == "" {
			d.AchievementsCertifications[i].ID = NewID()
		}
	}
}

// Clone returns a deep copy of the Document. Readers get clones so that
// no caller can mutate store state through a shared slice.
func (d *Document) Clone() *Document {
	out := *d
	out.WorkExperience = make([]WorkExperience, len(d.WorkExperience))
	for i, w := range d.WorkExperience {
		w.Description = w.Description.clone()
		out.WorkExperience[i] = w
	}
	out.Education = append([]Education(nil), d.Education...)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Description = p.Description.clone()
		out.Projects[i] = p
	}
	out.AchievementsCertifications = append([]AchievementCertification(nil), d.AchievementsCertifications...)
	return &out
}
