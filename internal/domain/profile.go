package domain

type Profile struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Title          string  `json:"title"`
	Tagline        string  `json:"tagline"`
	Avatar         string  `json:"avatar"`
	ProfilePicture *string `json:"profilePicture"`
	CoverImage     string  `json:"coverImage"`
	Verified       bool    `json:"verified"`
	TopRated       bool    `json:"topRated"`
	RisingTalent   bool    `json:"risingTalent"`
	MemberSince    string  `json:"memberSince"`
	LastActive     string  `json:"lastActive"`

	Overview    Overview    `json:"overview"`
	Location    Location    `json:"location"`
	Contact     Contact     `json:"contact"`
	Preferences Preferences `json:"preferences"`

	Skills         []Skill            `json:"skills"`
	Experience     []Experience       `json:"experience"`
	Education      []Education        `json:"education"`
	Certifications []Certification    `json:"certifications"`
	Portfolio      []PortfolioProject `json:"portfolio"`
	Languages      []Language         `json:"languages"`

	WorkHistory  []WorkHistoryEntry `json:"workHistory"`
	Testimonials []Testimonial      `json:"testimonials"`
	Badges       []Badge            `json:"badges"`
	Stats        Stats              `json:"stats"`
	Availability Availability       `json:"availability"`
}

type Overview struct {
	Summary             string `json:"summary"`
	ExpectedSalary      int    `json:"expectedSalary"`
	Availability        string `json:"availability"`
	YearsOfExperience   int    `json:"yearsOfExperience"`
	ResponseTime        string `json:"responseTime"`
	ProjectsCompleted   int    `json:"projectsCompleted"`
	CertificationsCount int    `json:"certificationsCount"`
	EndorsementsCount   int    `json:"endorsementsCount"`
	ProfileStrength     int    `json:"profileStrength"`
}

type Location struct {
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	Timezone          string `json:"timezone"`
	RemoteOnly        bool   `json:"remoteOnly"`
	WillingToRelocate bool   `json:"willingToRelocate"`
}

type Contact struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Twitter   string `json:"twitter"`
}

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

type Preferences struct {
	DesiredJobTypes  []string    `json:"desiredJobTypes"`
	DesiredSalary    SalaryRange `json:"desiredSalary"`
	DesiredLocations []string    `json:"desiredLocations"`
	RemotePreference string      `json:"remotePreference"`
	NoticePeriod     string      `json:"noticePeriod"`
	OpenToWork       bool        `json:"openToWork"`
	OpenToFreelance  bool        `json:"openToFreelance"`
	OpenToContract   bool        `json:"openToContract"`
	Industries       []string    `json:"industries"`
	CompanySizes     []string    `json:"companySizes"`
}

type Skill struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Level             string `json:"level"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Endorsements      int    `json:"endorsements"`
	Verified          bool   `json:"verified"`
}

type Experience struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	CompanyLogo    string   `json:"companyLogo,omitempty"`
	Location       string   `json:"location"`
	LocationType   string   `json:"locationType"`
	EmploymentType string   `json:"employmentType"`
	StartDate      string   `json:"startDate"`
	EndDate        *string  `json:"endDate"`
	Current        bool     `json:"current"`
	Description    string   `json:"description"`
	Achievements   []string `json:"achievements"`
	Skills         []string `json:"skills"`
}

type Education struct {
	ID           string   `json:"id"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"fieldOfStudy"`
	School       string   `json:"school"`
	SchoolLogo   string   `json:"schoolLogo,omitempty"`
	Location     string   `json:"location"`
	StartYear    int      `json:"startYear"`
	EndYear      *int     `json:"endYear"`
	Current      bool     `json:"current"`
	GPA          string   `json:"gpa,omitempty"`
	Honors       string   `json:"honors,omitempty"`
	Activities   []string `json:"activities,omitempty"`
	Description  string   `json:"description,omitempty"`
}

type Certification struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	IssuerLogo     string `json:"issuerLogo,omitempty"`
	IssueDate      string `json:"issueDate"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
	CredentialURL  string `json:"credentialUrl,omitempty"`
	Verified       bool   `json:"verified"`
}

type PortfolioProject struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
	Images        []string `json:"images"`
	ProjectURL    string   `json:"projectUrl,omitempty"`
	GitHubURL     string   `json:"githubUrl,omitempty"`
	Category      string   `json:"category"`
	Skills        []string `json:"skills"`
	CompletedDate string   `json:"completedDate"`
	Client        string   `json:"client,omitempty"`
	Testimonial   string   `json:"testimonial,omitempty"`
	Featured      bool     `json:"featured"`
}

type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type WorkHistoryEntry struct {
	ID            string   `json:"id"`
	ProjectTitle  string   `json:"projectTitle"`
	ClientName    string   `json:"clientName"`
	ClientAvatar  string   `json:"clientAvatar,omitempty"`
	ClientCountry string   `json:"clientCountry"`
	Rating        float64  `json:"rating"`
	Review        string   `json:"review"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Earnings      float64  `json:"earnings"`
	HoursWorked   int      `json:"hoursWorked"`
	Skills        []string `json:"skills"`
	ProjectType   string   `json:"projectType"`
}

type Testimonial struct {
	ID            string `json:"id"`
	Author        string `json:"author"`
	AuthorTitle   string `json:"authorTitle"`
	AuthorCompany string `json:"authorCompany"`
	AuthorAvatar  string `json:"authorAvatar,omitempty"`
	Content       string `json:"content"`
	Rating        int    `json:"rating"`
	Date          string `json:"date"`
	Relationship  string `json:"relationship"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	EarnedDate  string `json:"earnedDate"`
}

type Stats struct {
	ProfileViews        int `json:"profileViews"`
	SearchAppearances   int `json:"searchAppearances"`
	ProposalsSent       int `json:"proposalsSent"`
	InterviewsScheduled int `json:"interviewsScheduled"`
	OffersReceived      int `json:"offersReceived"`
	ConnectionsCount    int `json:"connectionsCount"`
}

type Availability struct {
	Schedule      []ScheduleDay  `json:"schedule"`
	VacationDates []VacationSpan `json:"vacationDates"`
}

type ScheduleDay struct {
	Day       string `json:"day"`
	Available bool   `json:"available"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type VacationSpan struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Note      string `json:"note,omitempty"`
}
