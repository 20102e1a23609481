package domain

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}

func cloneEach[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.ProfilePicture = clonePtr(p.ProfilePicture)
	p.Preferences = p.Preferences.Clone()

	p.Skills = cloneSlice(p.Skills)
	p.Experience = cloneEach(p.Experience, Experience.Clone)
	p.Education = cloneEach(p.Education, Education.Clone)
	p.Certifications = cloneSlice(p.Certifications)
	p.Portfolio = cloneEach(p.Portfolio, PortfolioProject.Clone)
	p.Languages = cloneSlice(p.Languages)

	p.WorkHistory = cloneEach(p.WorkHistory, WorkHistoryEntry.Clone)
	p.Testimonials = cloneSlice(p.Testimonials)
	p.Badges = cloneSlice(p.Badges)
	p.Availability = p.Availability.clone()
	return p
}

func (p Preferences) Clone() Preferences {
	p.DesiredJobTypes = cloneSlice(p.DesiredJobTypes)
	p.DesiredLocations = cloneSlice(p.DesiredLocations)
	p.Industries = cloneSlice(p.Industries)
	p.CompanySizes = cloneSlice(p.CompanySizes)
	return p
}

func (e Experience) Clone() Experience {
	e.EndDate = clonePtr(e.EndDate)
	e.Achievements = cloneSlice(e.Achievements)
	e.Skills = cloneSlice(e.Skills)
	return e
}

func (e Education) Clone() Education {
	e.EndYear = clonePtr(e.EndYear)
	e.Activities = cloneSlice(e.Activities)
	return e
}

func (p PortfolioProject) Clone() PortfolioProject {
	p.Images = cloneSlice(p.Images)
	p.Skills = cloneSlice(p.Skills)
	return p
}

func (w WorkHistoryEntry) Clone() WorkHistoryEntry {
	w.Skills = cloneSlice(w.Skills)
	return w
}

func (a Availability) clone() Availability {
	a.Schedule = cloneSlice(a.Schedule)
	a.VacationDates = cloneSlice(a.VacationDates)
	return a
}
