package devapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nookcoder/library-console/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken      = errors.New("email already in use")
	ErrMembershipTaken = errors.New("membership number already in use")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUserNotFound    = errors.New("user not found")
)

// User is a member record as the library API returns it.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	MembershipNumber string    `json:"membershipNumber"`
	MembershipDate   string    `json:"membershipDate"`
	MembershipType   string    `json:"membershipType"`
	Active           bool      `json:"active"`
	Roles            []string  `json:"roles"`
	CreatedAt        time.Time `json:"-"`

	passwordHash []byte
}

func (u *User) identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Roles: u.Roles}
}

// Directory is the in-memory user table of the development API.
type Directory struct {
	mu     sync.RWMutex
	byID   map[int64]*User
	nextID int64
	cost   int
}

func NewDirectory(cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{byID: make(map[int64]*User), nextID: 1, cost: cost}
}

// Add stores a new user. Email and membership number must be unique.
func (d *Directory) Add(u User, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, ErrEmailTaken
		}
		if u.MembershipNumber != "" && existing.MembershipNumber == u.MembershipNumber {
			return nil, ErrMembershipTaken
		}
	}

	u.ID = d.nextID
	d.nextID++
	if u.MembershipType == "" {
		u.MembershipType = "STANDARD"
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{"USER"}
	}
	u.CreatedAt = time.Now().UTC()
	u.MembershipDate = u.CreatedAt.Format(time.DateOnly)
	u.Active = true
	u.passwordHash = hash

	stored := u
	d.byID[u.ID] = &stored
	return &stored, nil
}

func (d *Directory) Authenticate(email, password string) (*User, error) {
	u, err := d.ByEmail(email)
	if err != nil || !u.Active {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func (d *Directory) ByEmail(email string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *Directory) ByID(id int64) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (d *Directory) List() []*User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	users := make([]*User, 0, len(d.byID))
	for _, u := range d.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
