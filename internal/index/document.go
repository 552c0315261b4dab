// Package index turns Canvas content into embedded documents and answers
// questions over them: build, embed, persist, retrieve by cosine
// similarity, and stuff the hits into a chat completion.
package index

import "fmt"

// Document kinds.
const (
	KindCourse     = "course"
	KindAssignment = "assignment"
	KindFile       = "file"
)

// Document is one embeddable unit of Canvas content.
type Document struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	CourseID int    `json:"course_id"`
	ItemID   int    `json:"item_id,omitempty"` // assignment or file id
	Content  string `json:"content"`
}

// Meta is the metadata view of a document exposed on the debug endpoint.
type Meta struct {
	Kind     string `json:"type"`
	CourseID int    `json:"course_id"`
	ItemID   int    `json:"item_id,omitempty"`
}

func courseDocID(courseID int) string {
	return fmt.Sprintf("course:%d", courseID)
}

func assignmentDocID(courseID, assignmentID int) string {
	return fmt.Sprintf("assignment:%d:%d", courseID, assignmentID)
}

func fileDocID(courseID, fileID int) string {
	return fmt.Sprintf("file:%d:%d", courseID, fileID)
}
