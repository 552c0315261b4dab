package index

import (
	"context"
	"errors"
	"testing"

	"github.com/mskaar/pensum/internal/canvas"
	"github.com/mskaar/pensum/internal/logger"
)

type stubSource struct {
	courses     []canvas.Course
	assignments map[int][]canvas.Assignment
	files       map[int][]canvas.File
	failCourse  int
}

func (s *stubSource) Courses(ctx context.Context) ([]canvas.Course, error) {
	return s.courses, nil
}

func (s *stubSource) Assignments(ctx context.Context, courseID int) ([]canvas.Assignment, error) {
	if courseID == s.failCourse {
		return nil, errors.New("boom")
	}
	return s.assignments[courseID], nil
}

func (s *stubSource) Files(ctx context.Context, courseID int) ([]canvas.File, error) {
	return s.files[courseID], nil
}

func TestBuilder_Build(t *testing.T) {
	source := &stubSource{
		courses: []canvas.Course{
			{ID: 2, Name: "Databases", CourseCode: "IN2090"},
			{ID: 1, Name: "Algorithms", CourseCode: "IN2010"},
			{ID: 3, Name: "Velkommen til UiO", CourseCode: "INFO"},
		},
		assignments: map[int][]canvas.Assignment{
			1: {{ID: 10, Name: "Oblig 1", Description: "<p>Sort things</p>", DueAt: "2026-09-01T23:59:00Z"}},
		},
		files: map[int][]canvas.File{
			2: {{ID: 20, DisplayName: "er-model.pdf", Size: 2048}},
		},
	}

	builder := NewBuilder(source, 2, logger.New("error", "text"))
	docs, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Two kept courses plus one assignment and one file; the info hub is
	// filtered out.
	if len(docs) != 4 {
		t.Fatalf("got %d documents, want 4", len(docs))
	}
	if docs[0].ID != "course:1" {
		t.Errorf("first doc = %s, want course:1 (sorted by course)", docs[0].ID)
	}

	byID := map[string]Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}
	a, ok := byID["assignment:1:10"]
	if !ok {
		t.Fatal("assignment document missing")
	}
	if want := "Oblig 1\nSort things\nDue: 2026-09-01T23:59:00Z"; a.Content != want {
		t.Errorf("assignment content = %q, want %q", a.Content, want)
	}
	if f := byID["file:2:20"]; f.Content != "er-model.pdf (2048 bytes)" {
		t.Errorf("file content = %q", f.Content)
	}
	for _, d := range docs {
		if d.CourseID == 3 {
			t.Errorf("info hub course leaked into the index: %s", d.ID)
		}
	}
}

func TestBuilder_BuildPropagatesFetchErrors(t *testing.T) {
	source := &stubSource{
		courses:    []canvas.Course{{ID: 1, Name: "Algorithms", CourseCode: "IN2010"}},
		failCourse: 1,
	}

	builder := NewBuilder(source, 1, logger.New("error", "text"))
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected error when a course fetch fails")
	}
}

func TestFileDocument_SizelessFallbackEntry(t *testing.T) {
	d := fileDocument(5, canvas.File{ID: 9, DisplayName: "notes.pdf"})
	if d.Content != "notes.pdf" {
		t.Errorf("content = %q, want bare display name", d.Content)
	}
}
