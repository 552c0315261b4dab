package canvas

import "strings"

// Institutions enroll every student in a handful of "information hub"
// courses (welcome pages, student democracy, faculty notice boards) that
// pollute retrieval with non-academic content. The lists below come from
// the course catalogue this service was built against.
var excludedKeywords = []string{
	"studentdemokratiet",
	"velkommen",
	"welcome",
	"informasjon",
	"information",
	"engasjement",
	"all you need to know",
	"alt du trenger å vite",
	"b-inf",
	"ifi",
}

var excludedCodes = []string{
	"b-inf",
	"ifi",
	"informasjon og engasjement",
	"alt du trenger å vite - all you need to know",
}

// FilterCourses drops information-hub courses, keeping actual academic
// courses only.
func FilterCourses(courses []Course) []Course {
	var kept []Course
	for _, course := range courses {
		if !isInfoHub(course) {
			kept = append(kept, course)
		}
	}
	return kept
}

func isInfoHub(course Course) bool {
	name := strings.ToLower(course.Name)
	code := strings.ToLower(course.CourseCode)

	for _, kw := range excludedKeywords {
		if strings.Contains(name, kw) || strings.Contains(code, kw) {
			return true
		}
	}
	for _, c := range excludedCodes {
		if code == c {
			return true
		}
	}
	return name == "b-inf" || name == "ifi"
}
