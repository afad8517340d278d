package view

// LoginPage is the data of the login form.
type LoginPage struct {
	Error         string
	LoggedOut     bool
	GoogleEnabled bool
}

// RegisterPage is the data of the registration form. Username and Email
// are echoed back after a rejected submission.
type RegisterPage struct {
	Error    string
	Username string
	Email    string
}

// NoteItem is one row of the note list.
type NoteItem struct {
	ID      string
	Title   string
	Content string
	TimeAgo string
	Summary string
}

// IndexPage is the home page: the caller's notes and the active search.
type IndexPage struct {
	Email string
	Notes []NoteItem
	Query string
}

// AboutPage is the static about page.
type AboutPage struct {
	Email string
}

// ErrorPage shows a client-safe failure message.
type ErrorPage struct {
	Status  int
	Message string
}
