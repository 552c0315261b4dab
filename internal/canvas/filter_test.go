package canvas

import "testing"

func TestFilterCourses(t *testing.T) {
	courses := []Course{
		{ID: 1, Name: "Algorithms and Data Structures", CourseCode: "IN2010"},
		{ID: 2, Name: "Velkommen til studiet", CourseCode: "INFO-1"},
		{ID: 3, Name: "Databases", CourseCode: "IN2090"},
		{ID: 4, Name: "Studentdemokratiet ved fakultetet", CourseCode: "DEMO"},
		{ID: 5, Name: "Alt du trenger å vite - All you need to know", CourseCode: "HUB"},
		{ID: 6, Name: "IFI", CourseCode: "X"},
	}

	kept := FilterCourses(courses)
	if len(kept) != 2 {
		t.Fatalf("kept %d courses, want 2: %+v", len(kept), kept)
	}
	if kept[0].ID != 1 || kept[1].ID != 3 {
		t.Errorf("kept wrong courses: %+v", kept)
	}
}

func TestFilterCourses_MatchesCourseCode(t *testing.T) {
	kept := FilterCourses([]Course{{ID: 1, Name: "Something", CourseCode: "B-INF informasjon"}})
	if len(kept) != 0 {
		t.Errorf("info-hub course code should be filtered, got %+v", kept)
	}
}
