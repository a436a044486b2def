// Package listing implements the search and sort rules of the course and
// topic views. Matching is case-folded and alphabetical ordering is collated
// for a configurable locale.
package listing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects the course ordering.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortOldest    SortOption = "oldest"
	SortAlphaAsc  SortOption = "alpha-asc"
	SortAlphaDesc SortOption = "alpha-desc"
)

var ErrUnknownSort = errors.New("unknown sort option")

// SortOptions lists the valid options, the default first.
var SortOptions = []SortOption{SortNewest, SortOldest, SortAlphaAsc, SortAlphaDesc}

// ParseSortOption accepts one of SortOptions. An empty string means newest.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return SortNewest, nil
	}
	o := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortOptions, o) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
	return o, nil
}

// Lister applies locale-aware filtering and sorting.
type Lister struct {
	tag language.Tag
}

// New returns a Lister for a BCP 47 locale such as "fa" or "en-US".
func New(locale string) (*Lister, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Lister{tag: tag}, nil
}

// fold builds a fresh Caser per call; a Caser is not safe for concurrent use.
func (l *Lister) fold(s string) string {
	return cases.Lower(l.tag).String(s)
}

func (l *Lister) matches(query string, fields ...string) bool {
	q := l.fold(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(l.fold(f), q) {
			return true
		}
	}
	return false
}

// FilterCourses keeps courses whose name or description contains query.
func (l *Lister) FilterCourses(courses []models.Course, query string) []models.Course {
	out := []models.Course{}
	for _, c := range courses {
		if l.matches(query, c.Name, c.Description) {
			out = append(out, c)
		}
	}
	return out
}

// SortCourses returns a sorted copy. Unknown options sort newest first.
func (l *Lister) SortCourses(courses []models.Course, option SortOption) []models.Course {
	out := slices.Clone(courses)

	switch option {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b models.Course) int {
			return a.CreatedAt.Compare(b.CreatedAt.Time)
		})
	case SortAlphaAsc, SortAlphaDesc:
		col := collate.New(l.tag)
		slices.SortStableFunc(out, func(a, b models.Course) int {
			if option == SortAlphaDesc {
				a, b = b, a
			}
			return col.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Course) int {
			return b.CreatedAt.Compare(a.CreatedAt.Time)
		})
	}
	return out
}

// FilterTopics keeps topics whose title contains query, oldest first.
func (l *Lister) FilterTopics(topics []models.Topic, query string) []models.Topic {
	out := []models.Topic{}
	for _, t := range topics {
		if l.matches(query, t.Title) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Topic) int {
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	})
	return out
}

// UserCourses is the admin view of one user's courses: owned by email,
// matching query, newest first.
func (l *Lister) UserCourses(all []models.Course, email, query string) []models.Course {
	owned := []models.Course{}
	for _, c := range all {
		if c.UserEmail == email {
			owned = append(owned, c)
		}
	}
	return l.SortCourses(l.FilterCourses(owned, query), SortNewest)
}

// OtherUsers returns the registry without the admin account.
func OtherUsers(users []models.StoredUser, adminEmail string) []models.StoredUser {
	out := []models.StoredUser{}
	for _, u := range users {
		if u.Email != adminEmail {
			out = append(out, u)
		}
	}
	return out
}

// Stats summarizes a user's courses for the profile view.
type Stats struct {
	Courses int
	Topics  int
}

func CourseStats(courses []models.Course) Stats {
	s := Stats{Courses: len(courses)}
	for _, c := range courses {
		s.Topics += len(c.Topics)
	}
	return s
}
