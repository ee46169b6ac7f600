package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportivo/platform/internal/auth"
	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/guard"
	"github.com/sportivo/platform/internal/repository"
)

// AuthService handles registration, login, logout and profile edits.
type AuthService struct {
	db       repository.DB
	users    repository.UserRepository
	outbox   repository.OutboxRepository
	sessions *auth.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(db repository.DB, users repository.UserRepository, outbox repository.OutboxRepository, sessions *auth.Manager) *AuthService {
	return &AuthService{db: db, users: users, outbox: outbox, sessions: sessions}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Nama           string `json:"nama"`
	Email          string `json:"email"`
	Kelamin        string `json:"kelamin"`
	TanggalLahir   string `json:"tanggal_lahir"`
	NomorHandphone string `json:"nomor_handphone"`
	Password       string `json:"password"`
	Password2      string `json:"password2"`
}

// Register creates a new account. Validation messages are the user-facing
// strings the clients already render.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Nama == "" || input.Email == "" || input.Kelamin == "" ||
		input.TanggalLahir == "" || input.NomorHandphone == "" ||
		input.Password == "" || input.Password2 == "" {
		return nil, domain.ErrValidation("Semua field harus diisi")
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation("Format email tidak valid")
	}
	kelamin := domain.Gender(input.Kelamin)
	if !kelamin.Valid() {
		return nil, domain.ErrValidation("Jenis kelamin tidak valid")
	}
	if err := domain.ValidateDate(input.TanggalLahir); err != nil {
		return nil, domain.ErrValidation("Format tanggal lahir tidak valid (gunakan YYYY-MM-DD)")
	}
	if err := domain.ValidatePhone(input.NomorHandphone); err != nil {
		return nil, domain.ErrValidation("Nomor handphone harus berupa angka")
	}
	if input.Password != input.Password2 {
		return nil, domain.ErrValidation("Password dan konfirmasi password tidak sama")
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("Password minimal 8 karakter")
	}

	existing, err := s.users.FindByEmail(ctx, s.db, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("Email sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.User{
		ID:             uuid.New(),
		Nama:           input.Nama,
		Email:          input.Email,
		Kelamin:        kelamin,
		TanggalLahir:   input.TanggalLahir,
		NomorHandphone: input.NomorHandphone,
		PasswordHash:   string(hash),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.Create(ctx, tx, user); err != nil {
		return nil, domain.ErrInternal("create user", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewUserRegisteredEvent(user.ID, user.Email)); err != nil {
		return nil, domain.ErrInternal("record event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return user, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and opens a session. Wrong email and wrong
// password produce the same message so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ip string) (*domain.Session, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation("Semua field harus diisi")
	}

	if err := guard.CheckLocked(ctx, s.db, input.Email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, s.db, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		guard.RecordAttempt(ctx, s.db, input.Email, ip, false)
		return nil, domain.ErrValidation("Email atau password salah")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.db, input.Email, ip, false)
		return nil, domain.ErrValidation("Email atau password salah")
	}

	guard.RecordAttempt(ctx, s.db, input.Email, ip, true)

	session, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, domain.ErrInternal("create session", err)
	}
	return session, nil
}

// Logout destroys the session. An unknown token is still a successful logout.
func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return domain.ErrInternal("destroy session", err)
	}
	return nil
}

// GetProfile returns the user's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}
	return user, nil
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Nama           string `json:"nama"`
	Kelamin        string `json:"kelamin"`
	TanggalLahir   string `json:"tanggal_lahir"`
	NomorHandphone string `json:"nomor_handphone"`
}

// UpdateProfile edits the profile and refreshes the denormalized session
// cache so open sessions see the new values immediately.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.User, error) {
	if input.Nama == "" || input.Kelamin == "" || input.TanggalLahir == "" || input.NomorHandphone == "" {
		return nil, domain.ErrValidation("Semua field harus diisi")
	}
	kelamin := domain.Gender(input.Kelamin)
	if !kelamin.Valid() {
		return nil, domain.ErrValidation("Jenis kelamin tidak valid")
	}
	if err := domain.ValidateDate(input.TanggalLahir); err != nil {
		return nil, domain.ErrValidation("Format tanggal lahir tidak valid (gunakan YYYY-MM-DD)")
	}
	if err := domain.ValidatePhone(input.NomorHandphone); err != nil {
		return nil, domain.ErrValidation("Nomor handphone harus berupa angka")
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}

	user.Nama = input.Nama
	user.Kelamin = kelamin
	user.TanggalLahir = input.TanggalLahir
	user.NomorHandphone = input.NomorHandphone

	if err := s.users.UpdateProfile(ctx, s.db, user); err != nil {
		return nil, domain.ErrInternal("update profile", err)
	}
	if err := s.sessions.Refresh(ctx, user); err != nil {
		return nil, domain.ErrInternal("refresh session cache", err)
	}

	return user, nil
}
