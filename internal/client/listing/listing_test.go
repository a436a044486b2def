package listing

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(ms int64) timex.Millis { return timex.NewMillis(time.UnixMilli(ms)) }

func names(cs []models.Course) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func newLister(t *testing.T, locale string) *Lister {
	t.Helper()
	l, err := New(locale)
	require.NoError(t, err)
	return l
}

func sample() []models.Course {
	return []models.Course{
		{Name: "banana", Description: "Yellow fruit", CreatedAt: at(2000), UserEmail: "a@x.com"},
		{Name: "Apple", Description: "red", CreatedAt: at(3000), UserEmail: "b@x.com"},
		{Name: "cherry", Description: "", CreatedAt: at(1000), UserEmail: "a@x.com"},
	}
}

func TestParseSortOption(t *testing.T) {
	for _, o := range SortOptions {
		got, err := ParseSortOption(string(o))
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	got, err := ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, got)

	got, err = ParseSortOption(" Alpha-Asc ")
	require.NoError(t, err)
	assert.Equal(t, SortAlphaAsc, got)

	_, err = ParseSortOption("random")
	require.ErrorIs(t, err, ErrUnknownSort)
}

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New("not a locale!!")
	require.Error(t, err)
}

func TestFilterCourses_CaseFoldedOnNameOrDescription(t *testing.T) {
	l := newLister(t, "en")

	assert.Equal(t, []string{"Apple"}, names(l.FilterCourses(sample(), "APP")))
	assert.Equal(t, []string{"banana"}, names(l.FilterCourses(sample(), "yellow")))
	assert.Len(t, l.FilterCourses(sample(), ""), 3)
	assert.Empty(t, l.FilterCourses(sample(), "kiwi"))
}

func TestFilterCourses_Persian(t *testing.T) {
	l := newLister(t, "fa")
	cs := []models.Course{{Name: "برنامه‌نویسی Go"}, {Name: "ریاضی"}}

	assert.Equal(t, []string{"برنامه‌نویسی Go"}, names(l.FilterCourses(cs, "go")))
	assert.Equal(t, []string{"ریاضی"}, names(l.FilterCourses(cs, "ریاضی")))
}

func TestFilterCourses_TurkishDotlessI(t *testing.T) {
	l := newLister(t, "tr")
	cs := []models.Course{{Name: "İstanbul"}}

	// Turkish lowercases İ to i, so "istanbul" matches
	assert.Len(t, l.FilterCourses(cs, "istanbul"), 1)
}

func TestSortCourses(t *testing.T) {
	l := newLister(t, "en")

	tests := []struct {
		option SortOption
		want   []string
	}{
		{SortNewest, []string{"Apple", "banana", "cherry"}},
		{SortOldest, []string{"cherry", "banana", "Apple"}},
		{SortAlphaAsc, []string{"Apple", "banana", "cherry"}},
		{SortAlphaDesc, []string{"cherry", "banana", "Apple"}},
		{SortOption("bogus"), []string{"Apple", "banana", "cherry"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			in := sample()
			got := l.SortCourses(in, tt.option)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, "banana", in[0].Name, "input must not be reordered")
		})
	}
}

func TestSortCourses_AlphaIsCollatedNotByteOrder(t *testing.T) {
	l := newLister(t, "en")
	cs := []models.Course{{Name: "banana"}, {Name: "Cherry"}, {Name: "apple"}}

	// byte order would put "Cherry" first
	assert.Equal(t, []string{"apple", "banana", "Cherry"}, names(l.SortCourses(cs, SortAlphaAsc)))
}

func TestFilterTopics_MatchesTitleOldestFirst(t *testing.T) {
	l := newLister(t, "en")
	topics := []models.Topic{
		{Title: "Channels", CreatedAt: at(3)},
		{Title: "Intro", Notes: "channels are covered later", CreatedAt: at(1)},
		{Title: "Buffered channels", CreatedAt: at(2)},
	}

	got := l.FilterTopics(topics, "CHANNEL")
	require.Len(t, got, 2)
	assert.Equal(t, "Buffered channels", got[0].Title)
	assert.Equal(t, "Channels", got[1].Title)

	all := l.FilterTopics(topics, "")
	require.Len(t, all, 3)
	assert.Equal(t, "Intro", all[0].Title)
}

func TestUserCourses(t *testing.T) {
	l := newLister(t, "en")

	assert.Equal(t, []string{"banana", "cherry"}, names(l.UserCourses(sample(), "a@x.com", "")))
	assert.Equal(t, []string{"cherry"}, names(l.UserCourses(sample(), "a@x.com", "CHER")))
	assert.Empty(t, l.UserCourses(sample(), "z@x.com", ""))
}

func TestOtherUsers(t *testing.T) {
	users := []models.StoredUser{
		{User: models.User{Email: "a@x.com"}},
		{User: models.User{Email: "admin@x.com", IsAdmin: true}},
		{User: models.User{Email: "b@x.com"}},
	}

	got := OtherUsers(users, "admin@x.com")
	require.Len(t, got, 2)
	assert.Equal(t, "a@x.com", got[0].Email)
	assert.Equal(t, "b@x.com", got[1].Email)
}

func TestCourseStats(t *testing.T) {
	cs := []models.Course{
		{Topics: []models.Topic{{}, {}}},
		{Topics: []models.Topic{{}}},
		{},
	}
	assert.Equal(t, Stats{Courses: 3, Topics: 3}, CourseStats(cs))
	assert.Equal(t, Stats{}, CourseStats(nil))
}
