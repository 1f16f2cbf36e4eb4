package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/resume"
)

func strPtr(s string) *string { return &s }

func TestAddUpdateRemove_LengthAlgebra(t *testing.T) {
	s := New()
	initial := len(s.Snapshot().WorkExperience)

	// 3 adds, 1 remove: length = initial + adds - removes
	s.AddWorkExperience()
	s.AddWorkExperience()
	s.AddWorkExperience()
	doc := s.Snapshot()
	require.Len(t, doc.WorkExperience, initial+3)

	s.RemoveWorkExperience(doc.WorkExperience[1].ID)
	assert.Len(t, s.Snapshot().WorkExperience, initial+2)
}

func TestUpdate_NeverReassignsIDs(t *testing.T) {
	s := New()
	s.AddWorkExperience()
	before := s.Snapshot().WorkExperience

	for _, rec := range before {
		s.UpdateWorkExperience(rec.ID, WorkExperiencePatch{Title: strPtr("Engineer")})
	}

	after := s.Snapshot().WorkExperience
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, "Engineer", after[i].Title)
	}
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.AddEducation()
	before := s.Snapshot().Education

	s.RemoveEducation("no-such-id")

	after := s.Snapshot().Education
	assert.Equal(t, before, after)
}

func TestRemove_ListMayBecomeEmpty(t *testing.T) {
	s := New()
	for _, rec := range s.Snapshot().Projects {
		s.RemoveProject(rec.ID)
	}
	assert.Empty(t, s.Snapshot().Projects)
}

func TestUpdate_OnlyPatchedFieldsChange(t *testing.T) {
	s := New()
	id := s.Snapshot().WorkExperience[0].ID
	s.UpdateWorkExperience(id, WorkExperiencePatch{
		Title:     strPtr("Engineer"),
		Company:   strPtr("Acme"),
		StartDate: strPtr("May 2020"),
		EndDate:   strPtr("Present"),
	})
	before := s.Snapshot().WorkExperience[0]

	s.UpdateWorkExperience(id, WorkExperiencePatch{Company: strPtr("Globex")})

	after := s.Snapshot().WorkExperience[0]
	assert.Equal(t, "Globex", after.Company)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.StartDate, after.StartDate)
	assert.Equal(t, before.EndDate, after.EndDate)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.ID, after.ID)
}

func TestUpdate_EmptyStringClearsField(t *testing.T) {
	s := New()
	id := s.Snapshot().Education[0].ID
	s.UpdateEducation(id, EducationPatch{Degree: strPtr("BSc"), GPA: strPtr("3.9")})
	s.UpdateEducation(id, EducationPatch{GPA: strPtr("")})

	rec := s.Snapshot().Education[0]
	assert.Equal(t, "BSc", rec.Degree)
	assert.Empty(t, rec.GPA)
}

func TestUpdatePersonalInfo_PartialMerge(t *testing.T) {
	s := New()
	s.UpdatePersonalInfo(PersonalInfoPatch{
		FullName: strPtr("Ada Lovelace"),
		Email:    strPtr("ada@example.com"),
	})
	s.UpdatePersonalInfo(PersonalInfoPatch{Phone: strPtr("555-0100")})

	info := s.Snapshot().PersonalInfo
	assert.Equal(t, "Ada Lovelace", info.FullName)
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, "555-0100", info.Phone)
	assert.Empty(t, info.LinkedIn)
}

func TestUpdateSkills_Replaces(t *testing.T) {
	s := New()
	s.UpdateSkills("Go, SQL")
	assert.Equal(t, "Go, SQL", s.Snapshot().Skills)

	s.UpdateSkills("")
	assert.Empty(t, s.Snapshot().Skills)
}

func TestReplace_InstallsWholesale(t *testing.T) {
	s := New()
	doc := &resume.Document{
		PersonalInfo:   resume.PersonalInfo{FullName: "Ada Lovelace"},
		WorkExperience: []resume.WorkExperience{{ID: "exp-1", Title: "Engineer"}},
		Skills:         "Go",
	}

	s.Replace(doc)

	got := s.Snapshot()
	assert.Equal(t, "Ada Lovelace", got.PersonalInfo.FullName)
	require.Len(t, got.WorkExperience, 1)
	assert.Equal(t, "exp-1", got.WorkExperience[0].ID)
	assert.Empty(t, got.Education)
}

func TestReplace_CopiesInput(t *testing.T) {
	s := New()
	doc := &resume.Document{WorkExperience: []resume.WorkExperience{{ID: "exp-1"}}}
	s.Replace(doc)

	// Caller mutations after Replace must not leak into the store.
	doc.WorkExperience[0].Title = "Changed"
	assert.Empty(t, s.Snapshot().WorkExperience[0].Title)
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	snap.PersonalInfo.FullName = "Changed"
	snap.WorkExperience[0].Title = "Changed"

	fresh := s.Snapshot()
	assert.Empty(t, fresh.PersonalInfo.FullName)
	assert.Empty(t, fresh.WorkExperience[0].Title)
}
