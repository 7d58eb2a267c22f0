package catalog

import "time"

// Data file names, relative to a Source root.
const (
	CandidatesFile = "candidates.json"
	ShopFile       = "shop.json"
	ArticlesFile   = "articles.json"
)

// Directory is the candidate directory: page-load state for the
// electorate, profile and votes pages.
type Directory struct {
	Metadata   Metadata               `json:"metadata"`
	Candidates map[string][]Candidate `json:"candidates"`
}

// Electorates returns the electorate names in sorted order.
func (d Directory) Electorates() []string {
	names := make([]string, 0, len(d.Candidates))
	for name := range d.Candidates {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// Metadata describes the provenance of the candidate data.
type Metadata struct {
	LastUpdated   string     `json:"lastUpdated,omitempty"`
	LastCheckedBy *CheckedBy `json:"lastCheckedBy,omitempty"`
	Source        string     `json:"source,omitempty"`
}

// CheckedBy records who last verified the data and when.
type CheckedBy struct {
	Entity string `json:"entity,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Candidate is one candidate standing in an electorate.
type Candidate struct {
	Name           string `json:"name"`
	Party          string `json:"party"`
	Profession     string `json:"profession,omitempty"`
	Bio            string `json:"bio"`
	PolicyLinks    []Link `json:"policyLinks,omitempty"`
	SocialLinks    []Link `json:"socialLinks,omitempty"`
	ContactDetails string `json:"contactDetails,omitempty"`
}

// Link is an outbound link. Label falls back to URL when empty.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Text returns the link label, or the URL when there is none.
func (l Link) Text() string {
	if l.Label != "" {
		return l.Label
	}
	return l.URL
}

// Profile is a candidate resolved together with its electorate.
type Profile struct {
	Candidate
	ID         string
	Electorate string
}

// Product is one shop item.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Article is one blog post. Content is markdown.
type Article struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	FeaturedImage string `json:"featuredImage"`
	Content       string `json:"content"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PublishedAt parses Date. ok is false when the date is unparseable.
func (a Article) PublishedAt() (t time.Time, ok bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, a.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats Date as "January 2, 2006", or returns it unchanged
// when it cannot be parsed.
func (a Article) DisplayDate() string {
	t, ok := a.PublishedAt()
	if !ok {
		return a.Date
	}
	return t.Format("January 2, 2006")
}
