package cms

import "time"

// Status is an entity's publication state. Projects use all three
// values, blog posts only draft and published.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// SkillCategory groups skills for display.
type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillDatabase SkillCategory = "database"
	SkillTools    SkillCategory = "tools"
	SkillOther    SkillCategory = "other"
)

// Meta carries the identity and timestamps shared by every entity.
// The id is assigned at creation and never reused; CreatedAt is
// immutable and UpdatedAt is refreshed on every mutation.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) id() string               { return m.ID }
func (m *Meta) setID(id string)          { m.ID = id }
func (m *Meta) createdAt() time.Time     { return m.CreatedAt }
func (m *Meta) setCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *Meta) touch(t time.Time)        { m.UpdatedAt = t }

type Project struct {
	Meta
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Tech            []string `json:"tech"`
	GitHub          string   `json:"github"`
	Demo            string   `json:"demo"`
	Image           string   `json:"image"`
	Featured        bool     `json:"featured"`
	Status          Status   `json:"status"`
	Category        string   `json:"category"`
	Views           int      `json:"views"`
	Likes           int      `json:"likes"`
}

type Experience struct {
	Meta
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Current      bool     `json:"current"`
	Order        int      `json:"order"`
}

type Skill struct {
	Meta
	Name     string        `json:"name"`
	Level    int           `json:"level"`
	Category SkillCategory `json:"category"`
	Icon     string        `json:"icon,omitempty"`
	Order    int           `json:"order"`
}

type Education struct {
	Meta
	Degree       string   `json:"degree"`
	School       string   `json:"school"`
	Period       string   `json:"period"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
	Current      bool     `json:"current"`
	Order        int      `json:"order"`
}

// Settings is the site-wide singleton record. Its collection never
// holds more than one element.
type Settings struct {
	ID              string    `json:"id"`
	SiteName        string    `json:"siteName"`
	SiteDescription string    `json:"siteDescription"`
	OwnerName       string    `json:"ownerName"`
	OwnerTitle      string    `json:"ownerTitle"`
	OwnerBio        string    `json:"ownerBio"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	GitHub          string    `json:"github"`
	LinkedIn        string    `json:"linkedin,omitempty"`
	Twitter         string    `json:"twitter,omitempty"`
	Avatar          string    `json:"avatar"`
	HeroImage       string    `json:"heroImage"`
	ResumeURL       string    `json:"resumeUrl,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BlogPost struct {
	Meta
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Image    string   `json:"image,omitempty"`
	Status   Status   `json:"status"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	Views    int      `json:"views"`
	Likes    int      `json:"likes"`
}

// StudyFile describes an uploaded document. UploadDate is the date-only
// stamp shown in listings; Meta carries the full timestamps.
type StudyFile struct {
	Meta
	Name        string `json:"name"`
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Semester    string `json:"semester"`
	Category    string `json:"category"`
	Size        string `json:"size"`
	UploadDate  string `json:"uploadDate"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url,omitempty"`
}

type Summary struct {
	Meta
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	FileType  string   `json:"fileType"`
	FileName  string   `json:"fileName"`
	FileSize  string   `json:"fileSize"`
}

// Analytics is one day's traffic record, keyed by date.
type Analytics struct {
	ID             string         `json:"id"`
	PageViews      int            `json:"pageViews"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	ProjectViews   map[string]int `json:"projectViews"`
	PopularPages   []PageStat     `json:"popularPages"`
	Date           string         `json:"date"`
}

type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}
