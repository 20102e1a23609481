package domain

// Patch types below mirror the editable profile sections. A nil field means
// "keep the current value"; slices are replaced wholesale when present.

type ProfilePatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Title          *string `json:"title,omitempty"`
	Tagline        *string `json:"tagline,omitempty"`
	Avatar         *string `json:"avatar,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	CoverImage     *string `json:"coverImage,omitempty"`
	Verified       *bool   `json:"verified,omitempty"`
	TopRated       *bool   `json:"topRated,omitempty"`
	RisingTalent   *bool   `json:"risingTalent,omitempty"`
	MemberSince    *string `json:"memberSince,omitempty"`
	LastActive     *string `json:"lastActive,omitempty"`

	Overview    *Overview    `json:"overview,omitempty"`
	Location    *Location    `json:"location,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`

	Skills         *[]Skill            `json:"skills,omitempty"`
	Experience     *[]Experience       `json:"experience,omitempty"`
	Education      *[]Education        `json:"education,omitempty"`
	Certifications *[]Certification    `json:"certifications,omitempty"`
	Portfolio      *[]PortfolioProject `json:"portfolio,omitempty"`
	Languages      *[]Language         `json:"languages,omitempty"`

	WorkHistory  *[]WorkHistoryEntry `json:"workHistory,omitempty"`
	Testimonials *[]Testimonial      `json:"testimonials,omitempty"`
	Badges       *[]Badge            `json:"badges,omitempty"`
	Stats        *Stats              `json:"stats,omitempty"`
	Availability *Availability       `json:"availability,omitempty"`
}

// Apply is a shallow merge: sections present in the patch replace the
// current section entirely.
func (p ProfilePatch) Apply(pr *Profile) {
	set(&pr.FirstName, p.FirstName)
	set(&pr.LastName, p.LastName)
	set(&pr.Title, p.Title)
	set(&pr.Tagline, p.Tagline)
	set(&pr.Avatar, p.Avatar)
	if p.ProfilePicture != nil {
		pr.ProfilePicture = clonePtr(p.ProfilePicture)
	}
	set(&pr.CoverImage, p.CoverImage)
	set(&pr.Verified, p.Verified)
	set(&pr.TopRated, p.TopRated)
	set(&pr.RisingTalent, p.RisingTalent)
	set(&pr.MemberSince, p.MemberSince)
	set(&pr.LastActive, p.LastActive)

	set(&pr.Overview, p.Overview)
	set(&pr.Location, p.Location)
	set(&pr.Contact, p.Contact)
	if p.Preferences != nil {
		pr.Preferences = p.Preferences.Clone()
	}

	setSlice(&pr.Skills, p.Skills)
	if p.Experience != nil {
		pr.Experience = cloneEach(*p.Experience, Experience.Clone)
	}
	if p.Education != nil {
		pr.Education = cloneEach(*p.Education, Education.Clone)
	}
	setSlice(&pr.Certifications, p.Certifications)
	if p.Portfolio != nil {
		pr.Portfolio = cloneEach(*p.Portfolio, PortfolioProject.Clone)
	}
	setSlice(&pr.Languages, p.Languages)
	if p.WorkHistory != nil {
		pr.WorkHistory = cloneEach(*p.WorkHistory, WorkHistoryEntry.Clone)
	}
	setSlice(&pr.Testimonials, p.Testimonials)
	setSlice(&pr.Badges, p.Badges)
	set(&pr.Stats, p.Stats)
	if p.Availability != nil {
		pr.Availability = p.Availability.clone()
	}
}

type OverviewPatch struct {
	Summary             *string `json:"summary,omitempty"`
	ExpectedSalary      *int    `json:"expectedSalary,omitempty"`
	Availability        *string `json:"availability,omitempty"`
	YearsOfExperience   *int    `json:"yearsOfExperience,omitempty"`
	ResponseTime        *string `json:"responseTime,omitempty"`
	ProjectsCompleted   *int    `json:"projectsCompleted,omitempty"`
	CertificationsCount *int    `json:"certificationsCount,omitempty"`
	EndorsementsCount   *int    `json:"endorsementsCount,omitempty"`
	ProfileStrength     *int    `json:"profileStrength,omitempty"`
}

func (p OverviewPatch) Apply(o *Overview) {
	set(&o.Summary, p.Summary)
	set(&o.ExpectedSalary, p.ExpectedSalary)
	set(&o.Availability, p.Availability)
	set(&o.YearsOfExperience, p.YearsOfExperience)
	set(&o.ResponseTime, p.ResponseTime)
	set(&o.ProjectsCompleted, p.ProjectsCompleted)
	set(&o.CertificationsCount, p.CertificationsCount)
	set(&o.EndorsementsCount, p.EndorsementsCount)
	set(&o.ProfileStrength, p.ProfileStrength)
}

type LocationPatch struct {
	City              *string `json:"city,omitempty"`
	State             *string `json:"state,omitempty"`
	Country           *string `json:"country,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	RemoteOnly        *bool   `json:"remoteOnly,omitempty"`
	WillingToRelocate *bool   `json:"willingToRelocate,omitempty"`
}

func (p LocationPatch) Apply(l *Location) {
	set(&l.City, p.City)
	set(&l.State, p.State)
	set(&l.Country, p.Country)
	set(&l.Timezone, p.Timezone)
	set(&l.RemoteOnly, p.RemoteOnly)
	set(&l.WillingToRelocate, p.WillingToRelocate)
}

type ContactPatch struct {
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
}

func (p ContactPatch) Apply(c *Contact) {
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.LinkedIn, p.LinkedIn)
	set(&c.GitHub, p.GitHub)
	set(&c.Portfolio, p.Portfolio)
	set(&c.Twitter, p.Twitter)
}

type PreferencesPatch struct {
	DesiredJobTypes  *[]string    `json:"desiredJobTypes,omitempty"`
	DesiredSalary    *SalaryRange `json:"desiredSalary,omitempty"`
	DesiredLocations *[]string    `json:"desiredLocations,omitempty"`
	RemotePreference *string      `json:"remotePreference,omitempty"`
	NoticePeriod     *string      `json:"noticePeriod,omitempty"`
	OpenToWork       *bool        `json:"openToWork,omitempty"`
	OpenToFreelance  *bool        `json:"openToFreelance,omitempty"`
	OpenToContract   *bool        `json:"openToContract,omitempty"`
	Industries       *[]string    `json:"industries,omitempty"`
	CompanySizes     *[]string    `json:"companySizes,omitempty"`
}

func (p PreferencesPatch) Apply(pr *Preferences) {
	setSlice(&pr.DesiredJobTypes, p.DesiredJobTypes)
	set(&pr.DesiredSalary, p.DesiredSalary)
	setSlice(&pr.DesiredLocations, p.DesiredLocations)
	set(&pr.RemotePreference, p.RemotePreference)
	set(&pr.NoticePeriod, p.NoticePeriod)
	set(&pr.OpenToWork, p.OpenToWork)
	set(&pr.OpenToFreelance, p.OpenToFreelance)
	set(&pr.OpenToContract, p.OpenToContract)
	setSlice(&pr.Industries, p.Industries)
	setSlice(&pr.CompanySizes, p.CompanySizes)
}

type SkillPatch struct {
	Name              *string `json:"name,omitempty"`
	Level             *string `json:"level,omitempty"`
	YearsOfExperience *int    `json:"yearsOfExperience,omitempty"`
	Endorsements      *int    `json:"endorsements,omitempty"`
	Verified          *bool   `json:"verified,omitempty"`
}

func (p SkillPatch) Apply(s *Skill) {
	set(&s.Name, p.Name)
	set(&s.Level, p.Level)
	set(&s.YearsOfExperience, p.YearsOfExperience)
	set(&s.Endorsements, p.Endorsements)
	set(&s.Verified, p.Verified)
}

type ExperiencePatch struct {
	Title          *string   `json:"title,omitempty"`
	Company        *string   `json:"company,omitempty"`
	CompanyLogo    *string   `json:"companyLogo,omitempty"`
	Location       *string   `json:"location,omitempty"`
	LocationType   *string   `json:"locationType,omitempty"`
	EmploymentType *string   `json:"employmentType,omitempty"`
	StartDate      *string   `json:"startDate,omitempty"`
	EndDate        *string   `json:"endDate,omitempty"`
	Current        *bool     `json:"current,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Achievements   *[]string `json:"achievements,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
}

func (p ExperiencePatch) Apply(e *Experience) {
	set(&e.Title, p.Title)
	set(&e.Company, p.Company)
	set(&e.CompanyLogo, p.CompanyLogo)
	set(&e.Location, p.Location)
	set(&e.LocationType, p.LocationType)
	set(&e.EmploymentType, p.EmploymentType)
	set(&e.StartDate, p.StartDate)
	if p.EndDate != nil {
		e.EndDate = clonePtr(p.EndDate)
	}
	set(&e.Current, p.Current)
	set(&e.Description, p.Description)
	setSlice(&e.Achievements, p.Achievements)
	setSlice(&e.Skills, p.Skills)
}

type EducationPatch struct {
	Degree       *string   `json:"degree,omitempty"`
	FieldOfStudy *string   `json:"fieldOfStudy,omitempty"`
	School       *string   `json:"school,omitempty"`
	SchoolLogo   *string   `json:"schoolLogo,omitempty"`
	Location     *string   `json:"location,omitempty"`
	StartYear    *int      `json:"startYear,omitempty"`
	EndYear      *int      `json:"endYear,omitempty"`
	Current      *bool     `json:"current,omitempty"`
	GPA          *string   `json:"gpa,omitempty"`
	Honors       *string   `json:"honors,omitempty"`
	Activities   *[]string `json:"activities,omitempty"`
	Description  *string   `json:"description,omitempty"`
}

func (p EducationPatch) Apply(e *Education) {
	set(&e.Degree, p.Degree)
	set(&e.FieldOfStudy, p.FieldOfStudy)
	set(&e.School, p.School)
	set(&e.SchoolLogo, p.SchoolLogo)
	set(&e.Location, p.Location)
	set(&e.StartYear, p.StartYear)
	if p.EndYear != nil {
		e.EndYear = clonePtr(p.EndYear)
	}
	set(&e.Current, p.Current)
	set(&e.GPA, p.GPA)
	set(&e.Honors, p.Honors)
	setSlice(&e.Activities, p.Activities)
	set(&e.Description, p.Description)
}

type CertificationPatch struct {
	Name           *string `json:"name,omitempty"`
	Issuer         *string `json:"issuer,omitempty"`
	IssuerLogo     *string `json:"issuerLogo,omitempty"`
	IssueDate      *string `json:"issueDate,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
	CredentialID   *string `json:"credentialId,omitempty"`
	CredentialURL  *string `json:"credentialUrl,omitempty"`
	Verified       *bool   `json:"verified,omitempty"`
}

func (p CertificationPatch) Apply(c *Certification) {
	set(&c.Name, p.Name)
	set(&c.Issuer, p.Issuer)
	set(&c.IssuerLogo, p.IssuerLogo)
	set(&c.IssueDate, p.IssueDate)
	set(&c.ExpirationDate, p.ExpirationDate)
	set(&c.CredentialID, p.CredentialID)
	set(&c.CredentialURL, p.CredentialURL)
	set(&c.Verified, p.Verified)
}

type PortfolioProjectPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Thumbnail     *string   `json:"thumbnail,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	ProjectURL    *string   `json:"projectUrl,omitempty"`
	GitHubURL     *string   `json:"githubUrl,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Skills        *[]string `json:"skills,omitempty"`
	CompletedDate *string   `json:"completedDate,omitempty"`
	Client        *string   `json:"client,omitempty"`
	Testimonial   *string   `json:"testimonial,omitempty"`
	Featured      *bool     `json:"featured,omitempty"`
}

func (p PortfolioProjectPatch) Apply(pp *PortfolioProject) {
	set(&pp.Title, p.Title)
	set(&pp.Description, p.Description)
	set(&pp.Thumbnail, p.Thumbnail)
	setSlice(&pp.Images, p.Images)
	set(&pp.ProjectURL, p.ProjectURL)
	set(&pp.GitHubURL, p.GitHubURL)
	set(&pp.Category, p.Category)
	setSlice(&pp.Skills, p.Skills)
	set(&pp.CompletedDate, p.CompletedDate)
	set(&pp.Client, p.Client)
	set(&pp.Testimonial, p.Testimonial)
	set(&pp.Featured, p.Featured)
}

type LanguagePatch struct {
	Language    *string `json:"language,omitempty"`
	Proficiency *string `json:"proficiency,omitempty"`
}

func (p LanguagePatch) Apply(l *Language) {
	set(&l.Language, p.Language)
	set(&l.Proficiency, p.Proficiency)
}
