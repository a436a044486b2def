package models

import (
	"slices"

	"github.com/dmitrijs2005/coursemanager/internal/timex"
)

// Course is a named container of ordered topics owned by one user.
type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Topics      []Topic      `json:"topics"`
	CreatedAt   timex.Millis `json:"createdAt"`
	UserEmail   string       `json:"userEmail"`
}

// Topic is a titled unit of notes and images within a course. IDs are unique
// within their course only.
type Topic struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Notes     string       `json:"notes"`
	ImageURLs []string     `json:"imageUrls"`
	CreatedAt timex.Millis `json:"createdAt"`
}

// Topic returns the topic with the given id.
func (c Course) Topic(id string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Clone returns a deep copy of c.
func (c Course) Clone() Course {
	if c.Topics != nil {
		topics := make([]Topic, len(c.Topics))
		for i, t := range c.Topics {
			topics[i] = t.Clone()
		}
		c.Topics = topics
	}
	return c
}

// Clone returns a deep copy of t.
func (t Topic) Clone() Topic {
	t.ImageURLs = slices.Clone(t.ImageURLs)
	return t
}

// CloneCourses deep-copies a collection.
func CloneCourses(in []Course) []Course {
	if in == nil {
		return nil
	}
	out := make([]Course, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
