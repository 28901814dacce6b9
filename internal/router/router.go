package router

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const maxRedirects = 8

var (
	ErrNoRoute      = errors.New("router: no route matches")
	ErrRedirectLoop = errors.New("router: too many redirects")
	ErrBadTarget    = errors.New("router: unusable redirect target")
)

// Navigation describes where an attempt ended up.
type Navigation struct {
	Requested string
	Path      string
	Route     *Route
	Params    map[string]string
	// Denials lists the guard redirects taken on the way, in order.
	Denials []string
}

// Redirected reports whether the navigation ended somewhere other than
// requested.
func (n *Navigation) Redirected() bool {
	return n.Path != n.Requested
}

// Router resolves console paths against a route table and runs guards
// before activating a route.
type Router struct {
	routes []*Route
	logger *zap.Logger

	mu        sync.Mutex
	current   *Navigation
	listeners []func(*Navigation)
}

func New(routes []*Route, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{routes: routes, logger: logger.Named("router")}
}

// OnActivate registers fn to run after every successful activation.
func (r *Router) OnActivate(fn func(*Navigation)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Current returns the last activated navigation, or nil.
func (r *Router) Current() *Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate activates the route for path. Static redirects and guard
// redirects are followed synchronously.
func (r *Router) Navigate(path string) (*Navigation, error) {
	nav := &Navigation{Requested: path}
	target := path

	for hop := 0; hop <= maxRedirects; hop++ {
		route, params, ok := r.resolve(target)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoRoute, target)
		}
		if route.RedirectTo != "" {
			target = route.RedirectTo
			continue
		}

		outcome, decision := Evaluate(route)
		if outcome == Denied {
			r.logger.Info("navigation denied",
				zap.String("path", target),
				zap.String("route", route.Name),
				zap.String("redirect", decision.Redirect),
			)
			nav.Denials = append(nav.Denials, decision.Redirect)
			target = decision.Redirect
			continue
		}

		nav.Path = target
		nav.Route = route
		nav.Params = params
		r.activate(nav)
		return nav, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}

func (r *Router) resolve(path string) (*Route, map[string]string, bool) {
	for _, route := range r.routes {
		if params, ok := route.match(path); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

func (r *Router) activate(nav *Navigation) {
	r.mu.Lock()
	r.current = nav
	listeners := make([]func(*Navigation), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	r.logger.Debug("route activated", zap.String("path", nav.Path), zap.String("route", nav.Route.Name))
	for _, fn := range listeners {
		fn(nav)
	}
}

// CheckTargets verifies the paths the guards redirect to. loginPath must reach
// a route without guards and landingPath a route without role requirements;
// neither may end on the "**" fallback.
func CheckTargets(routes []*Route, loginPath, landingPath string) error {
	r := &Router{routes: routes}

	login, err := r.settle(loginPath)
	if err != nil {
		return fmt.Errorf("%w: login %q: %v", ErrBadTarget, loginPath, err)
	}
	if len(login.Guards) > 0 {
		return fmt.Errorf("%w: login %q is guarded", ErrBadTarget, loginPath)
	}

	landing, err := r.settle(landingPath)
	if err != nil {
		return fmt.Errorf("%w: landing %q: %v", ErrBadTarget, landingPath, err)
	}
	if len(landing.Roles) > 0 {
		return fmt.Errorf("%w: landing %q requires roles %v", ErrBadTarget, landingPath, landing.Roles)
	}
	return nil
}

// settle follows static redirects from path without running guards.
func (r *Router) settle(path string) (*Route, error) {
	for hop := 0; hop <= maxRedirects; hop++ {
		route, _, ok := r.resolve(path)
		if !ok || route.Pattern == "**" {
			return nil, ErrNoRoute
		}
		if route.RedirectTo == "" {
			return route, nil
		}
		path = route.RedirectTo
	}
	return nil, ErrRedirectLoop
}
