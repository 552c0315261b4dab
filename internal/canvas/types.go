package canvas

// Course is a Canvas course enrollment.
type Course struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Assignment is a Canvas assignment. Description holds Canvas rich text
// (HTML).
type Assignment struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueAt       string `json:"due_at"`
}

// File is a file attached to a course. Entries recovered through the
// modules fallback carry no size.
type File struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// Module is a course module; only its items matter here.
type Module struct {
	ID    int          `json:"id"`
	Items []ModuleItem `json:"items"`
}

// ModuleItem is a single entry inside a module.
type ModuleItem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	ContentID int    `json:"content_id"`
	HTMLURL   string `json:"html_url"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email"`
}
