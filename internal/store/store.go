// Package store holds the mutable résumé state for one editing session.
// The store owns exactly one Document; all mutations are serialized under
// a lock and are immediately visible to readers. There is no undo and no
// persistence: the Document lives and dies with the session.
package store

import (
	"sync"

	"github.com/jonathan/resume-builder/internal/resume"
)

// PersonalInfoPatch is a partial update to the singleton personal info
// fields. Nil pointers mean "leave unchanged"; a pointer to the empty
// string clears the field.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

// WorkExperiencePatch is a partial update to one work experience record.
type WorkExperiencePatch struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationPatch is a partial update to one education record.
type EducationPatch struct {
	Degree         *string `json:"degree,omitempty"`
	Institution    *string `json:"institution,omitempty"`
	GraduationDate *string `json:"graduationDate,omitempty"`
	GPA            *string `json:"gpa,omitempty"`
}

// ProjectPatch is a partial update to one project record.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty"`
}

// AchievementPatch is a partial update to one achievement record.
type AchievementPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Date   *string `json:"date,omitempty"`
}

// Store holds one Document and exposes typed mutation operations.
type Store struct {
	mu  sync.RWMutex
	doc *resume.Document
}

// New creates a Store seeded with one empty record in each repeated list.
func New() *Store {
	return &Store{doc: resume.NewDocument()}
}

// Snapshot returns a deep copy of the current Document.
func (s *Store) Snapshot() *resume.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Replace discards the current Document and installs doc wholesale.
// Used after successful AI structuring; a failed structuring call must
// never reach this method.
func (s *Store) Replace(doc *resume.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
}

// UpdatePersonalInfo merges the fields present in the patch onto the
// singleton personal info.
func (s *Store) UpdatePersonalInfo(patch PersonalInfoPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := &s.doc.PersonalInfo
	setString(&info.FullName, patch.FullName)
	setString(&info.Email, patch.Email)
	setString(&info.Phone, patch.Phone)
	setString(&info.LinkedIn, patch.LinkedIn)
	setString(&info.GitHub, patch.GitHub)
	setString(&info.Summary, patch.Summary)
}

// UpdateSkills replaces the free-text skills field.
func (s *Store) UpdateSkills(skills string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Skills = skills
}

// AddWorkExperience appends an empty work experience record with a fresh ID.
func (s *Store) AddWorkExperience() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.WorkExperience = append(s.doc.WorkExperience, resume.WorkExperience{ID: resume.NewID()})
}

// UpdateWorkExperience merges the patch onto the record with the given ID.
// Unknown IDs are a no-op, not an error. The ID itself is never changed.
func (s *Store) UpdateWorkExperience(id string, patch WorkExperiencePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WorkExperience {
		if s.doc.WorkExperience[i].ID != id {
			continue
		}
		rec := &s.doc.WorkExperience[i]
		setString(&rec.Title, patch.Title)
		setString(&rec.Company, patch.Company)
		setString(&rec.StartDate, patch.StartDate)
		setString(&rec.EndDate, patch.EndDate)
		if patch.Description != nil {
			rec.Description = resume.FromString(*patch.Description)
		}
		return
	}
}

// RemoveWorkExperience removes the record with the given ID. Unknown IDs
// are a no-op. A list is allowed to become empty.
func (s *Store) RemoveWorkExperience(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.WorkExperience {
		if s.doc.WorkExperience[i].ID == id {
			s.doc.WorkExperience = append(s.doc.WorkExperience[:i], s.doc.WorkExperience[i+1:]...)
			return
		}
	}
}

// AddEducation appends an empty education record with a fresh ID.
func (s *Store) AddEducation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Education = append(s.doc.Education, resume.Education{ID: resume.NewID()})
}

// UpdateEducation merges the patch onto the record with the given ID.
func (s *Store) UpdateEducation(id string, patch EducationPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Education {
		if s.doc.Education[i].ID != id {
			continue
		}
		rec := &s.doc.Education[i]
		setString(&rec.Degree, patch.Degree)
		setString(&rec.Institution, patch.Institution)
		setString(&rec.GraduationDate, patch.GraduationDate)
		setString(&rec.GPA, patch.GPA)
		return
	}
}

// RemoveEducation removes the record with the given ID.
func (s *Store) RemoveEducation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Education {
		if s.doc.Education[i].ID == id {
			s.doc.Education = append(s.doc.Education[:i], s.doc.Education[i+1:]...)
			return
		}
	}
}

// AddProject appends an empty project record with a fresh ID.
func (s *Store) AddProject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Projects = append(s.doc.Projects, resume.Project{ID: resume.NewID()})
}

// UpdateProject merges the patch onto the record with the given ID.
func (s *Store) UpdateProject(id string, patch ProjectPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Projects {
		if s.doc.Projects[i].ID != id {
			continue
		}
		rec := &s.doc.Projects[i]
		setString(&rec.Name, patch.Name)
		setString(&rec.Link, patch.Link)
		if patch.Description != nil {
			rec.Description = resume.FromString(*patch.Description)
		}
		return
	}
}

// RemoveProject removes the record with the given ID.
func (s *Store) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Projects {
		if s.doc.Projects[i].ID == id {
			s.doc.Projects = append(s.doc.Projects[:i], s.doc.Projects[i+1:]...)
			return
		}
	}
}

// AddAchievement appends an empty achievement record with a fresh ID.
func (s *Store) AddAchievement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.AchievementsCertifications = append(s.doc.AchievementsCertifications,
		resume.AchievementCertification{ID: resume.NewID()})
}

// UpdateAchievement merges the patch onto the record with the given ID.
func (s *Store) UpdateAchievement(id string, patch AchievementPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.AchievementsCertifications {
		if s.doc.AchievementsCertifications[i].ID != id {
			continue
		}
		rec := &s.doc.AchievementsCertifications[i]
		setString(&rec.Name, patch.Name)
		setString(&rec.Issuer, patch.Issuer)
		setString(&rec.Date, patch.Date)
		return
	}
}

// RemoveAchievement removes the record with the given ID.
func (s *Store) RemoveAchievement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.AchievementsCertifications {
		if s.doc.AchievementsCertifications[i].ID == id {
			s.doc.AchievementsCertifications = append(s.doc.AchievementsCertifications[:i],
				s.doc.AchievementsCertifications[i+1:]...)
			return
		}
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
