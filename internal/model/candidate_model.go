package model

const (
	MaxEducations       = 3
	MaxWorkExperiences  = 10
	MaxProjects         = 10
	MaxEducationBullets = 3
)

// CandidateRecord is the canonical extracted-or-entered profile. Every field
// always exists; a value the parser could not find is an empty string or an
// empty slice, never a missing field.
type CandidateRecord struct {
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Linkedin        string           `json:"linkedin"`
	Github          string           `json:"github"`
	Educations      []EducationEntry `json:"educations"`
	WorkExperiences []WorkEntry      `json:"work_experiences"`
	Projects        []ProjectEntry   `json:"projects"`
	Skills          string           `json:"skills"`
}

type EducationEntry struct {
	University string   `json:"university"`
	Degree     string   `json:"degree"`
	Dates      string   `json:"dates"`
	GPA        string   `json:"gpa"`
	Location   string   `json:"location"`
	Bullets    []string `json:"bullets"`
}

// WorkEntry keeps Description as freeform prose. Bullet conversion happens
// later, at generation time.
type WorkEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type ProjectEntry struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Context     string `json:"context"`
	Description string `json:"description"`
}

// NewCandidateRecord returns a fully defaulted record. Slices are allocated
// so JSON responses carry [] instead of null.
func NewCandidateRecord() CandidateRecord {
	return CandidateRecord{
		Educations:      []EducationEntry{},
		WorkExperiences: []WorkEntry{},
		Projects:        []ProjectEntry{},
	}
}

// Normalize enforces the record invariant in place: nil slices become empty,
// list lengths are capped, and per-education bullets are trimmed to the
// retained maximum.
func (r *CandidateRecord) Normalize() {
	if r.Educations == nil {
		r.Educations = []EducationEntry{}
	}
	if r.WorkExperiences == nil {
		r.WorkExperiences = []WorkEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	if len(r.Educations) > MaxEducations {
		r.Educations = r.Educations[:MaxEducations]
	}
	if len(r.WorkExperiences) > MaxWorkExperiences {
		r.WorkExperiences = r.WorkExperiences[:MaxWorkExperiences]
	}
	if len(r.Projects) > MaxProjects {
		r.Projects = r.Projects[:MaxProjects]
	}
	for i := range r.Educations {
		if r.Educations[i].Bullets == nil {
			r.Educations[i].Bullets = []string{}
		}
		if len(r.Educations[i].Bullets) > MaxEducationBullets {
			r.Educations[i].Bullets = r.Educations[i].Bullets[:MaxEducationBullets]
		}
	}
}
