package router

// Role names issued by the library API.
const (
	RoleAdmin     = "ADMIN"
	RoleLibrarian = "LIBRARIAN"
	RoleUser      = "USER"
)

// Route names of the console screens.
const (
	Login      = "login"
	Register   = "register"
	Dashboard  = "dashboard"
	Books      = "books"
	BookDetail = "book-detail"
	Loans      = "loans"
	Users      = "users"
	UserLoans  = "user-loans"
)

// ConsoleRoutes is the console's route table. Paths starting with "/" are
// used for redirects; loginPath and landingPath must point at routes in the
// table.
func ConsoleRoutes(authz Authorizer, loginPath, landingPath string) []*Route {
	authGuard := RequireAuth(authz, loginPath)
	roleGuard := RequireRoles(authz, landingPath)

	return []*Route{
		{Name: "root", Pattern: "", RedirectTo: landingPath},
		{Name: Login, Pattern: "login"},
		{Name: Register, Pattern: "register"},
		{Name: Dashboard, Pattern: "dashboard", Guards: []Guard{authGuard}},
		{Name: Books, Pattern: "books", Guards: []Guard{authGuard}},
		{Name: BookDetail, Pattern: "books/:id", Guards: []Guard{authGuard}},
		{Name: Loans, Pattern: "loans", Guards: []Guard{authGuard}},
		{
			Name:    Users,
			Pattern: "users",
			Roles:   []string{RoleAdmin},
			Guards:  []Guard{authGuard, roleGuard},
		},
		{
			Name:    UserLoans,
			Pattern: "users/:id/loans",
			Roles:   []string{RoleAdmin},
			Guards:  []Guard{authGuard, roleGuard},
		},
		{Name: "fallback", Pattern: "**", RedirectTo: landingPath},
	}
}
