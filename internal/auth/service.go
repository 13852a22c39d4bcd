package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

const (
	usersKey   = "fitlearned_auth"
	sessionKey = "fitlearned_session"

	sessionTTL = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrEmailTaken         = errors.New("email already exists")
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the public shape of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// storedUser additionally carries the bcrypt hash. Plaintext passwords
// are never persisted.
type storedUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// Session is the time-bounded record naming the current user. Valid
// iff the current time is before ExpiresAt.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service validates credentials against the stored user list and owns
// the session record.
type Service struct {
	kv     store.KV
	events *bus.Bus
	secret []byte
	now    func() time.Time
}

func NewService(kv store.KV, secret string, events *bus.Bus) *Service {
	return &Service{kv: kv, events: events, secret: []byte(secret), now: time.Now}
}

// EnsureAdmin seeds the default administrator when no users exist yet.
func (s *Service) EnsureAdmin() error {
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}
	admin := storedUser{
		User: User{
			ID:        "admin-1",
			Email:     "admin@fitlearned.com",
			Name:      "Fitrah Andhika Ramadhan",
			Role:      RoleAdmin,
			Avatar:    "/placeholder.svg?height=40&width=40",
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: string(hash),
	}
	return s.saveUsers([]storedUser{admin}, bus.OpSeeded)
}

// Login checks the credentials against the stored user list and, on
// success, writes a fresh 24h session. A failed login never mutates
// state.
func (s *Service) Login(email, password string) (*User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[idx].PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	users[idx].LastLogin = now
	if err := s.saveUsers(users, bus.OpUpdated); err != nil {
		return nil, err
	}

	user := users[idx].User
	expiresAt := now.Add(sessionTTL)
	token, err := s.signToken(user, expiresAt)
	if err != nil {
		return nil, err
	}
	session := Session{User: user, Token: token, ExpiresAt: expiresAt}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout deletes the session record. Deleting an absent session is not
// an error.
func (s *Service) Logout() error {
	if err := s.kv.Delete(sessionKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser returns the session's user, or nil when unauthenticated.
// An expired session is purged here, as a side effect of the read.
func (s *Service) CurrentUser() (*User, error) {
	session, err := s.loadSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if !s.now().Before(session.ExpiresAt) {
		if err := s.Logout(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	user := session.User
	return &user, nil
}

func (s *Service) IsAuthenticated() bool {
	user, err := s.CurrentUser()
	return err == nil && user != nil
}

// IsAdmin is derived from the current user's role; nothing is stored.
func (s *Service) IsAdmin() bool {
	user, err := s.CurrentUser()
	return err == nil && user != nil && user.Role == RoleAdmin
}

// Token returns the current session's token, or "" when unauthenticated.
func (s *Service) Token() (string, error) {
	session, err := s.loadSession()
	if err != nil {
		return "", err
	}
	if session == nil || !s.now().Before(session.ExpiresAt) {
		return "", nil
	}
	return session.Token, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *Service) ChangePassword(current, updated string) error {
	user, err := s.CurrentUser()
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotAuthenticated
	}

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != user.ID {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(current)); err != nil {
			return ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("change password: hash: %w", err)
		}
		users[i].PasswordHash = string(hash)
		return s.saveUsers(users, bus.OpUpdated)
	}
	return ErrNotAuthenticated
}

// CreateUser registers a new account. Emails are unique.
func (s *Service) CreateUser(email, password, name string, role Role) (*User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}
	user := storedUser{
		User: User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Role:      role,
			Avatar:    "/placeholder.svg?height=40&width=40",
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: string(hash),
	}
	users = append(users, user)
	if err := s.saveUsers(users, bus.OpCreated); err != nil {
		return nil, err
	}
	out := user.User
	return &out, nil
}

// VerifyToken parses and validates a bearer token, returning its
// claims. Used by the HTTP middleware.
func (s *Service) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("verify token: invalid claims")
	}
	return claims, nil
}

func (s *Service) signToken(user User, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) loadUsers() ([]storedUser, error) {
	raw, ok, err := s.kv.Get(usersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok || raw == "" {
		return []storedUser{}, nil
	}
	var users []storedUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("load users: decode: %w", err)
	}
	return users, nil
}

func (s *Service) saveUsers(users []storedUser, op bus.Op) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("save users: encode: %w", err)
	}
	if err := s.kv.Set(usersKey, string(raw)); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	if s.events != nil {
		s.events.Publish(bus.Event{Entity: bus.EntityUsers, Op: op})
	}
	return nil
}

func (s *Service) loadSession() (*Session, error) {
	raw, ok, err := s.kv.Get(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("load session: decode: %w", err)
	}
	return &session, nil
}

func (s *Service) saveSession(session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}
	if err := s.kv.Set(sessionKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
