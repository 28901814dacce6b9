package router

// Authorizer is the view of the session the guards need.
type Authorizer interface {
	IsAuthenticated() bool
	HasRole(required ...string) bool
}

// Decision is a guard's verdict on a navigation attempt.
type Decision struct {
	Proceed  bool
	Redirect string
}

func Proceed() Decision { return Decision{Proceed: true} }

func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// Guard inspects the destination route before it is activated. Guards read
// session state only; they must not block or change it.
type Guard func(route *Route) Decision

// RequireAuth sends unauthenticated operators to loginPath.
func RequireAuth(authz Authorizer, loginPath string) Guard {
	return func(*Route) Decision {
		if authz.IsAuthenticated() {
			return Proceed()
		}
		return RedirectTo(loginPath)
	}
}

// RequireRoles lets the navigation through when the route declares no roles
// or the session holds any of them. Otherwise it redirects to landingPath.
func RequireRoles(authz Authorizer, landingPath string) Guard {
	return func(route *Route) Decision {
		if len(route.Roles) == 0 {
			return Proceed()
		}
		if authz.HasRole(route.Roles...) {
			return Proceed()
		}
		return RedirectTo(landingPath)
	}
}

// Outcome is the state of one navigation attempt.
type Outcome int

const (
	Pending Outcome = iota
	Allowed
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	default:
		return "pending"
	}
}

// Evaluate runs the route's guards in declaration order and stops at the
// first one that does not proceed.
func Evaluate(route *Route) (Outcome, Decision) {
	for _, guard := range route.Guards {
		if d := guard(route); !d.Proceed {
			return Denied, d
		}
	}
	return Allowed, Proceed()
}
