package identity

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/liblend/library-ledger-go/library/core"
	"github.com/liblend/library-ledger-go/library/shell"
	"github.com/liblend/library-ledger-go/recordstore"
)

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
	seedAdminName     = "System Administrator"
	seedAdminEmail    = "admin@library.local"

	logMsgSeededAdminUser   = "seeded admin user"
	logMsgStoredUsersBroken = "stored users are unreadable, falling back to seed"
	logMsgUserLoggedIn      = "user logged in"
	logMsgUserLoggedOut     = "user logged out"
	logAttrUsername         = "username"
	logAttrSessionID        = "session_id"
	logAttrError            = "error"
)

// Session names the currently logged-in user. It is persisted so a restart
// keeps the login, as expected on a single-device system.
//
// The JSON field names are the persisted format and must stay stable.
type Session struct {
	SessionID  string    `json:"sessionId"`
	UserID     int       `json:"userId"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Service owns the users and the current session. It is constructed once per
// process, loads its state from the store, and persists wholesale after every
// mutation.
type Service struct {
	store   shell.Storage
	users   []core.User
	session *Session
	logger  recordstore.Logger
	clock   func() time.Time
}

// Option defines a functional option for configuring the Service.
type Option func(*Service) error

// WithLogger sets the logger for the Service.
func WithLogger(logger recordstore.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source, used for registration and login timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) error {
		s.clock = clock
		return nil
	}
}

// NewService creates the Identity Service, loading users and session from the
// store. An empty store is seeded with the admin account.
func NewService(ctx context.Context, store shell.Storage, options ...Option) (*Service, error) {
	service := &Service{
		store: store,
		clock: time.Now,
	}

	for _, option := range options {
		if err := option(service); err != nil {
			return nil, err
		}
	}

	if err := service.loadUsers(ctx); err != nil {
		return nil, err
	}

	if err := service.loadSession(ctx); err != nil {
		return nil, err
	}

	return service, nil
}

// Register creates a new user with the regular user role.
func (s *Service) Register(ctx context.Context, username string, password string, name string, email string, phone string) (core.User, error) {
	for _, existing := range s.users {
		if existing.Username == username {
			return core.User{}, ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, err
	}

	user := core.User{
		ID:           core.NextUserID(s.users),
		Username:     username,
		PasswordHash: string(hash),
		Role:         core.RoleUser,
		Name:         name,
		Email:        email,
		Phone:        phone,
		CreatedAt:    s.clock(),
	}

	updated := append(slices.Clone(s.users), user)

	if err := s.saveUsers(ctx, updated); err != nil {
		return core.User{}, err
	}

	s.users = updated

	return user.WithoutPassword(), nil
}

// Login verifies the password and starts a persisted session.
func (s *Service) Login(ctx context.Context, username string, password string) (Session, error) {
	index := s.indexOfUsername(username)
	if index < 0 {
		return Session{}, ErrUserNotFound
	}

	user := s.users[index]

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrWrongPassword
	}

	session := Session{
		SessionID:  uuid.NewString(),
		UserID:     user.ID,
		Username:   user.Username,
		Name:       user.Name,
		Role:       user.Role,
		LoggedInAt: s.clock(),
	}

	if err := s.saveSession(ctx, &session); err != nil {
		return Session{}, err
	}

	s.session = &session
	s.logInfo(logMsgUserLoggedIn, logAttrUsername, username, logAttrSessionID, session.SessionID)

	return session, nil
}

// Logout clears the current session.
func (s *Service) Logout(ctx context.Context) error {
	if s.session == nil {
		return ErrNotLoggedIn
	}

	if err := s.saveSession(ctx, nil); err != nil {
		return err
	}

	s.logInfo(logMsgUserLoggedOut, logAttrUsername, s.session.Username)
	s.session = nil

	return nil
}

// Current returns the logged-in user with the password hash stripped.
func (s *Service) Current() (core.User, error) {
	if s.session == nil {
		return core.User{}, ErrNotLoggedIn
	}

	for _, user := range s.users {
		if user.ID == s.session.UserID {
			return user.WithoutPassword(), nil
		}
	}

	return core.User{}, ErrUserNotFound
}

// Users returns all users with their password hashes stripped.
func (s *Service) Users() []core.User {
	users := make([]core.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.WithoutPassword())
	}

	return users
}

// Update replaces the profile fields of the stored user with the same id.
// The stored password hash and role are kept.
func (s *Service) Update(ctx context.Context, user core.User) (core.User, error) {
	index := s.indexOf(user.ID)
	if index < 0 {
		return core.User{}, ErrUserNotFound
	}

	stored := s.users[index]
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Phone = user.Phone

	updated := slices.Clone(s.users)
	updated[index] = stored

	if err := s.saveUsers(ctx, updated); err != nil {
		return core.User{}, err
	}

	s.users = updated

	return stored.WithoutPassword(), nil
}

// ChangePassword re-hashes and replaces the password of the given user.
func (s *Service) ChangePassword(ctx context.Context, id int, newPassword string) error {
	index := s.indexOf(id)
	if index < 0 {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated := slices.Clone(s.users)
	updated[index].PasswordHash = string(hash)

	if err := s.saveUsers(ctx, updated); err != nil {
		return err
	}

	s.users = updated

	return nil
}

// Delete removes the user with the given id. Admin accounts cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int) error {
	index := s.indexOf(id)
	if index < 0 {
		return ErrUserNotFound
	}

	if s.users[index].IsAdmin() {
		return ErrAdminUndeletable
	}

	updated := slices.Delete(slices.Clone(s.users), index, index+1)

	if err := s.saveUsers(ctx, updated); err != nil {
		return err
	}

	s.users = updated

	return nil
}

func (s *Service) loadUsers(ctx context.Context) error {
	doc, err := s.store.Load(ctx, shell.KeyUsers)

	switch {
	case errors.Is(err, recordstore.ErrDocumentNotFound):
		return s.seedAdmin(ctx)

	case err != nil:
		return err
	}

	if mapErr := shell.CollectionFrom(doc, &s.users); mapErr != nil {
		s.logWarn(logMsgStoredUsersBroken, logAttrError, mapErr.Error())
		return s.seedAdmin(ctx)
	}

	if len(s.users) == 0 {
		return s.seedAdmin(ctx)
	}

	return nil
}

func (s *Service) seedAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := core.User{
		ID:           1,
		Username:     seedAdminUsername,
		PasswordHash: string(hash),
		Role:         core.RoleAdmin,
		Name:         seedAdminName,
		Email:        seedAdminEmail,
		CreatedAt:    s.clock(),
	}

	s.users = []core.User{admin}
	s.logInfo(logMsgSeededAdminUser, logAttrUsername, admin.Username)

	return s.saveUsers(ctx, s.users)
}

func (s *Service) loadSession(ctx context.Context) error {
	doc, err := s.store.Load(ctx, shell.KeyCurrentUser)

	switch {
	case errors.Is(err, recordstore.ErrDocumentNotFound):
		return nil

	case err != nil:
		return err
	}

	var session *Session
	if mapErr := shell.CollectionFrom(doc, &session); mapErr != nil {
		return nil // an unreadable session degrades to "not logged in"
	}

	s.session = session

	return nil
}

func (s *Service) indexOf(id int) int {
	for index, user := range s.users {
		if user.ID == id {
			return index
		}
	}

	return -1
}

func (s *Service) indexOfUsername(username string) int {
	for index, user := range s.users {
		if user.Username == username {
			return index
		}
	}

	return -1
}

func (s *Service) saveUsers(ctx context.Context, users []core.User) error {
	doc, err := shell.DocumentFrom(shell.KeyUsers, users)
	if err != nil {
		return err
	}

	return s.store.Save(ctx, doc)
}

// saveSession persists the session, or a JSON null when logging out.
func (s *Service) saveSession(ctx context.Context, session *Session) error {
	doc, err := shell.DocumentFrom(shell.KeyCurrentUser, session)
	if err != nil {
		return err
	}

	return s.store.Save(ctx, doc)
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
