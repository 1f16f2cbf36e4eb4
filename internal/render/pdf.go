// Package render serializes a Document into a PDF byte stream with fixed
// layout rules: a vertical cursor grows downward from the top margin,
// sections render in a fixed order, and missing optional fields render as
// empty strings so layout positions stay stable. Text is drawn natively,
// so the output is selectable and searchable. Long lines overflow the
// page silently; that is an accepted limitation, not an error.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-builder/internal/resume"
)

const (
	leftMargin     = 50.0
	topMargin      = 50.0
	linePadding    = 5.0
	sectionSpacing = 20.0

	nameSize    = 24.0
	sectionSize = 14.0
	headerSize  = 12.0
	bodySize    = 10.0
)

type color struct{ r, g, b int }

var (
	accent   = color{0, 135, 181}
	black    = color{0, 0, 0}
	body     = color{51, 51, 51}
	meta     = color{77, 77, 77}
	linkBlue = color{13, 102, 204}
)

// Render produces a PDF byte stream for the Document. Output is
// deterministic for a given input.
func Render(doc *resume.Document) ([]byte, error) {
	if doc == nil {
		return nil, &GenerationError{Message: "no document provided"}
	}

	p := newPage()
	p.personalInfo(doc.PersonalInfo)
	p.workExperience(doc.WorkExperience)
	p.education(doc.Education)
	p.skills(doc.Skills)
	p.projects(doc.Projects)
	p.achievements(doc.AchievementsCertifications)

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, &GenerationError{Message: "failed to encode PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

// page tracks the vertical cursor while drawing.
type page struct {
	pdf *gofpdf.Fpdf
	y   float64
}

func newPage() *page {
	pdf := gofpdf.New("P", "pt", "A4", "")
	// Fixed creation date keeps the byte stream reproducible for a given
	// document.
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &page{pdf: pdf, y: topMargin}
}

// line draws one text line at the cursor and advances it by the font
// size plus fixed padding. No wrapping is performed.
func (p *page) line(text string, size float64, c color, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	p.pdf.SetFont("Helvetica", style, size)
	p.pdf.SetTextColor(c.r, c.g, c.b)
	p.y += size
	p.pdf.Text(leftMargin, p.y, text)
	p.y += linePadding
}

func (p *page) gap(points float64) {
	p.y += points
}

func (p *page) sectionHeader(title string) {
	p.line(title, sectionSize, black, true)
}

func (p *page) bullets(lines resume.Lines) {
	for _, entry := range lines.Entries() {
		p.line(fmt.Sprintf("• %s", entry), bodySize, body, false)
	}
}

func (p *page) personalInfo(info resume.PersonalInfo) {
	name := info.FullName
	if name == "" {
		name = "Full Name"
	}
	p.line(name, nameSize, accent, true)
	p.line(fmt.Sprintf("%s | %s | %s", info.Email, info.Phone, info.LinkedIn), bodySize, body, false)
	p.line(info.GitHub, bodySize, body, false)
	p.gap(sectionSpacing)

	if info.Summary != "" {
		p.sectionHeader("Summary")
		p.line(info.Summary, bodySize, body, false)
		p.gap(sectionSpacing)
	}
}

func (p *page) workExperience(jobs []resume.WorkExperience) {
	if len(jobs) == 0 {
		return
	}
	p.sectionHeader("Work Experience")
	for _, job := range jobs {
		p.line(fmt.Sprintf("%s at %s", job.Title, job.Company), headerSize, black, true)
		p.line(fmt.Sprintf("%s - %s", job.StartDate, job.EndDate), bodySize, meta, false)
		p.bullets(job.Description)
		p.gap(sectionSpacing / 2)
	}
	p.gap(sectionSpacing)
}

func (p *page) education(entries []resume.Education) {
	if len(entries) == 0 {
		return
	}
	p.sectionHeader("Education")
	for _, edu := range entries {
		p.line(fmt.Sprintf("%s - %s", edu.Degree, edu.Institution), headerSize, black, true)
		p.line(fmt.Sprintf("%s, GPA: %s", edu.GraduationDate, edu.GPA), bodySize, meta, false)
		p.gap(sectionSpacing / 2)
	}
	p.gap(sectionSpacing)
}

func (p *page) skills(skills string) {
	if skills == "" {
		return
	}
	p.sectionHeader("Skills")
	p.line(skills, bodySize, body, false)
	p.gap(sectionSpacing)
}

func (p *page) projects(entries []resume.Project) {
	if len(entries) == 0 {
		return
	}
	p.sectionHeader("Projects")
	for _, project := range entries {
		p.line(project.Name, headerSize, black, true)
		p.bullets(project.Description)
		if project.Link != "" {
			p.line(fmt.Sprintf("Link: %s", project.Link), bodySize, linkBlue, false)
		}
		p.gap(sectionSpacing / 2)
	}
	p.gap(sectionSpacing)
}

func (p *page) achievements(entries []resume.AchievementCertification) {
	if len(entries) == 0 {
		return
	}
	p.sectionHeader("Achievements & Certifications")
	for _, entry := range entries {
		p.line(fmt.Sprintf("%s (%s, %s)", entry.Name, entry.Issuer, entry.Date), headerSize, black, true)
		p.gap(sectionSpacing / 2)
	}
	p.gap(sectionSpacing)
}
