package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mskaar/pensum/internal/canvas"
	"github.com/mskaar/pensum/internal/logger"
	"github.com/mskaar/pensum/internal/worker"
)

// CourseSource is the slice of the Canvas client the builder needs.
type CourseSource interface {
	Courses(ctx context.Context) ([]canvas.Course, error)
	Assignments(ctx context.Context, courseID int) ([]canvas.Assignment, error)
	Files(ctx context.Context, courseID int) ([]canvas.File, error)
}

// Builder fetches course content and turns it into documents.
type Builder struct {
	source  CourseSource
	workers int
	log     *logger.Logger
}

// NewBuilder creates a builder fetching up to workers courses at a time.
func NewBuilder(source CourseSource, workers int, log *logger.Logger) *Builder {
	return &Builder{source: source, workers: workers, log: log}
}

type courseJob struct {
	source CourseSource
	course canvas.Course
}

type courseResult struct {
	course      canvas.Course
	assignments []canvas.Assignment
	files       []canvas.File
	err         error
}

func (r *courseResult) GetError() error { return r.err }

func (j *courseJob) Execute(ctx context.Context) worker.Result {
	res := &courseResult{course: j.course}

	assignments, err := j.source.Assignments(ctx, j.course.ID)
	if err != nil {
		res.err = fmt.Errorf("course %d assignments: %w", j.course.ID, err)
		return res
	}
	res.assignments = assignments

	files, err := j.source.Files(ctx, j.course.ID)
	if err != nil {
		res.err = fmt.Errorf("course %d files: %w", j.course.ID, err)
		return res
	}
	res.files = files
	return res
}

// Build lists active courses, drops information hubs, fetches each
// course's assignments and files concurrently and returns one document
// per course, assignment and file.
func (b *Builder) Build(ctx context.Context) ([]Document, error) {
	courses, err := b.source.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	courses = canvas.FilterCourses(courses)
	b.log.Infof("indexing %d courses", len(courses))

	pool := worker.NewPool(b.workers)
	pool.Start()
	for _, course := range courses {
		pool.Submit(&courseJob{source: b.source, course: course})
	}

	var fetched []*courseResult
	for _, res := range pool.Wait() {
		cr := res.(*courseResult)
		if cr.err != nil {
			pool.Shutdown()
			return nil, cr.err
		}
		fetched = append(fetched, cr)
	}

	// Workers finish in arbitrary order; sort so rebuilds are stable.
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].course.ID < fetched[j].course.ID })

	var docs []Document
	for _, cr := range fetched {
		docs = append(docs, courseDocument(cr.course))
		for _, a := range cr.assignments {
			docs = append(docs, assignmentDocument(cr.course.ID, a))
		}
		for _, f := range cr.files {
			docs = append(docs, fileDocument(cr.course.ID, f))
		}
	}
	b.log.Infof("built %d documents", len(docs))
	return docs, nil
}

func courseDocument(c canvas.Course) Document {
	return Document{
		ID:       courseDocID(c.ID),
		Kind:     KindCourse,
		CourseID: c.ID,
		Content:  fmt.Sprintf("Course: %s (%s)", c.Name, c.CourseCode),
	}
}

func assignmentDocument(courseID int, a canvas.Assignment) Document {
	content := a.Name
	if desc := StripHTML(a.Description); desc != "" {
		content += "\n" + desc
	}
	if a.DueAt != "" {
		content += "\nDue: " + a.DueAt
	}
	return Document{
		ID:       assignmentDocID(courseID, a.ID),
		Kind:     KindAssignment,
		CourseID: courseID,
		ItemID:   a.ID,
		Content:  strings.TrimSpace(content),
	}
}

func fileDocument(courseID int, f canvas.File) Document {
	content := f.DisplayName
	if f.Size > 0 {
		content = fmt.Sprintf("%s (%d bytes)", f.DisplayName, f.Size)
	}
	return Document{
		ID:       fileDocID(courseID, f.ID),
		Kind:     KindFile,
		CourseID: courseID,
		ItemID:   f.ID,
		Content:  content,
	}
}
