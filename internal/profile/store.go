// Package profile owns a client's professional profile document and the
// edits allowed on its sections.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"talent-horizon/internal/domain"
	"talent-horizon/internal/idgen"
	"talent-horizon/internal/storage"
)

const StorageKey = "talent-horizon-profile"

// Element id prefixes per list section.
const (
	SkillPrefix         = "sk"
	ExperiencePrefix    = "exp"
	EducationPrefix     = "edu"
	CertificationPrefix = "cert"
	PortfolioPrefix     = "proj"
	LanguagePrefix      = "lang"
)

type Options struct {
	ClientID string
	Logger   *zap.Logger
	// Now drives element id generation. Defaults to time.Now.
	Now func() time.Time
	// Seed replaces the built-in default document.
	Seed *domain.Profile
}

type Store struct {
	mu sync.RWMutex

	kv       storage.KeyValue
	log      *zap.Logger
	clientID string
	ids      *idgen.Sequence

	doc domain.Profile
}

// New loads the profile from kv, falling back to the seed document when the
// key is empty or cannot be decoded.
func New(ctx context.Context, kv storage.KeyValue, opts Options) (*Store, error) {
	s := &Store{
		kv:       kv,
		log:      opts.Logger,
		clientID: opts.ClientID,
		ids:      idgen.NewSequence(opts.Now),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	doc, found, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		if opts.Seed != nil {
			doc = opts.Seed.Clone()
		} else if doc, err = Seed(); err != nil {
			return nil, err
		}
	}

	s.doc = doc
	s.normalize()
	return s, nil
}

func (s *Store) load(ctx context.Context) (domain.Profile, bool, error) {
	raw, err := s.kv.Load(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("load %s: %w", StorageKey, err)
	}

	var doc domain.Profile
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("malformed stored profile, using seed",
			zap.String("client_id", s.clientID),
			zap.Error(err),
		)
		return domain.Profile{}, false, nil
	}
	return doc, true, nil
}

// normalize seeds the id sequence from existing element ids and gives every
// language entry an id. Legacy documents stored languages without ids.
func (s *Store) normalize() {
	for _, v := range s.doc.Skills {
		s.ids.ObserveString(SkillPrefix, v.ID)
	}
	for _, v := range s.doc.Experience {
		s.ids.ObserveString(ExperiencePrefix, v.ID)
	}
	for _, v := range s.doc.Education {
		s.ids.ObserveString(EducationPrefix, v.ID)
	}
	for _, v := range s.doc.Certifications {
		s.ids.ObserveString(CertificationPrefix, v.ID)
	}
	for _, v := range s.doc.Portfolio {
		s.ids.ObserveString(PortfolioPrefix, v.ID)
	}
	for _, v := range s.doc.Languages {
		s.ids.ObserveString(LanguagePrefix, v.ID)
	}
	for i := range s.doc.Languages {
		if s.doc.Languages[i].ID == "" {
			s.doc.Languages[i].ID = s.ids.NextWithPrefix(LanguagePrefix)
		}
	}
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.kv.Save(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("persist %s: %w", StorageKey, err)
	}
	return nil
}

// mutate runs fn on the document under the write lock and persists when fn
// reports a change.
func (s *Store) mutate(ctx context.Context, fn func(doc *domain.Profile) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.doc) {
		return false, nil
	}
	return true, s.persist(ctx)
}

// Profile returns a deep copy of the current document.
func (s *Store) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// UpdateProfile shallow-merges patch into the document. The profile id is
// not patchable.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) error {
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		patch.Apply(doc)
		for i := range doc.Languages {
			if doc.Languages[i].ID == "" {
				doc.Languages[i].ID = s.ids.NextWithPrefix(LanguagePrefix)
			}
		}
		return true
	})
	return err
}

func (s *Store) UpdateOverview(ctx context.Context, patch domain.OverviewPatch) error {
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		patch.Apply(&doc.Overview)
		return true
	})
	return err
}

func (s *Store) UpdateLocation(ctx context.Context, patch domain.LocationPatch) error {
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		patch.Apply(&doc.Location)
		return true
	})
	return err
}

func (s *Store) UpdateContact(ctx context.Context, patch domain.ContactPatch) error {
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		patch.Apply(&doc.Contact)
		return true
	})
	return err
}

func (s *Store) UpdatePreferences(ctx context.Context, patch domain.PreferencesPatch) error {
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		patch.Apply(&doc.Preferences)
		return true
	})
	return err
}

// AddSkill appends; the other list sections prepend.
func (s *Store) AddSkill(ctx context.Context, v domain.Skill) (domain.Skill, error) {
	var added domain.Skill
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v.ID = s.ids.NextWithPrefix(SkillPrefix)
		added = v
		doc.Skills = append(doc.Skills, v)
		return true
	})
	return added, err
}

func (s *Store) UpdateSkill(ctx context.Context, id string, patch domain.SkillPatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Skills, id, func(v *domain.Skill) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeleteSkill(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Skills, id, func(v *domain.Skill) string { return v.ID })
	})
}

func (s *Store) AddExperience(ctx context.Context, v domain.Experience) (domain.Experience, error) {
	var added domain.Experience
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v = v.Clone()
		v.ID = s.ids.NextWithPrefix(ExperiencePrefix)
		added = v.Clone()
		doc.Experience = slices.Insert(doc.Experience, 0, v)
		return true
	})
	return added, err
}

func (s *Store) UpdateExperience(ctx context.Context, id string, patch domain.ExperiencePatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Experience, id, func(v *domain.Experience) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeleteExperience(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Experience, id, func(v *domain.Experience) string { return v.ID })
	})
}

func (s *Store) AddEducation(ctx context.Context, v domain.Education) (domain.Education, error) {
	var added domain.Education
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v = v.Clone()
		v.ID = s.ids.NextWithPrefix(EducationPrefix)
		added = v.Clone()
		doc.Education = slices.Insert(doc.Education, 0, v)
		return true
	})
	return added, err
}

func (s *Store) UpdateEducation(ctx context.Context, id string, patch domain.EducationPatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Education, id, func(v *domain.Education) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeleteEducation(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Education, id, func(v *domain.Education) string { return v.ID })
	})
}

func (s *Store) AddCertification(ctx context.Context, v domain.Certification) (domain.Certification, error) {
	var added domain.Certification
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v.ID = s.ids.NextWithPrefix(CertificationPrefix)
		added = v
		doc.Certifications = slices.Insert(doc.Certifications, 0, v)
		return true
	})
	return added, err
}

func (s *Store) UpdateCertification(ctx context.Context, id string, patch domain.CertificationPatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Certifications, id, func(v *domain.Certification) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeleteCertification(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Certifications, id, func(v *domain.Certification) string { return v.ID })
	})
}

func (s *Store) AddPortfolioProject(ctx context.Context, v domain.PortfolioProject) (domain.PortfolioProject, error) {
	var added domain.PortfolioProject
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v = v.Clone()
		v.ID = s.ids.NextWithPrefix(PortfolioPrefix)
		added = v.Clone()
		doc.Portfolio = slices.Insert(doc.Portfolio, 0, v)
		return true
	})
	return added, err
}

func (s *Store) UpdatePortfolioProject(ctx context.Context, id string, patch domain.PortfolioProjectPatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Portfolio, id, func(v *domain.PortfolioProject) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeletePortfolioProject(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Portfolio, id, func(v *domain.PortfolioProject) string { return v.ID })
	})
}

func (s *Store) AddLanguage(ctx context.Context, v domain.Language) (domain.Language, error) {
	var added domain.Language
	_, err := s.mutate(ctx, func(doc *domain.Profile) bool {
		v.ID = s.ids.NextWithPrefix(LanguagePrefix)
		added = v
		doc.Languages = append(doc.Languages, v)
		return true
	})
	return added, err
}

func (s *Store) UpdateLanguage(ctx context.Context, id string, patch domain.LanguagePatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return updateByID(doc.Languages, id, func(v *domain.Language) string { return v.ID }, patch.Apply)
	})
}

func (s *Store) DeleteLanguage(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		return deleteByID(&doc.Languages, id, func(v *domain.Language) string { return v.ID })
	})
}

// UpdateLanguageAt addresses a language by its position. An out-of-range
// index is a no-op.
func (s *Store) UpdateLanguageAt(ctx context.Context, index int, patch domain.LanguagePatch) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		if index < 0 || index >= len(doc.Languages) {
			return false
		}
		patch.Apply(&doc.Languages[index])
		return true
	})
}

func (s *Store) DeleteLanguageAt(ctx context.Context, index int) (bool, error) {
	return s.mutate(ctx, func(doc *domain.Profile) bool {
		if index < 0 || index >= len(doc.Languages) {
			return false
		}
		doc.Languages = slices.Delete(doc.Languages, index, index+1)
		return true
	})
}

func updateByID[T any](items []T, id string, idOf func(*T) string, apply func(*T)) bool {
	for i := range items {
		if idOf(&items[i]) == id {
			apply(&items[i])
			return true
		}
	}
	return false
}

func deleteByID[T any](items *[]T, id string, idOf func(*T) string) bool {
	i := slices.IndexFunc(*items, func(v T) bool { return idOf(&v) == id })
	if i < 0 {
		return false
	}
	*items = slices.Delete(*items, i, i+1)
	return true
}
