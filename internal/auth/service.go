package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/saborvila/poscore/internal/auth/entity"
	authrepo "github.com/saborvila/poscore/internal/auth/repo"
	"github.com/saborvila/poscore/pkg/database"
	"github.com/saborvila/poscore/pkg/utilities"
)

// PasswordHasher defines the minimal hashing interface. Hashing happens here,
// before the credential reaches a repository; repositories only ever see the
// opaque hash.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrInvalidDocument  = errors.New("document does not match tipoDocumento")
	ErrDuplicateUser    = errors.New("email or document already registered")
	ErrShopLimitReached = errors.New("owner already has a shop")
)

// RegisterUserInput carries registration fields. Exactly one of CPF/CNPJ must
// be set, matching TipoDocumento.
type RegisterUserInput struct {
	Nome          string
	Sobrenome     string
	TipoDocumento string
	CPF           string
	CNPJ          string
	Email         string
	Telefone      string
	Endereco      string
	Senha         string
}

// Service orchestrates registration and shop lifecycle flows.
type Service struct {
	users  *authrepo.UserRepo
	shops  *authrepo.ShopRepo
	hasher PasswordHasher
}

func NewService(db *sqlx.DB, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{
		users:  authrepo.NewUserRepo(db),
		shops:  authrepo.NewShopRepo(db),
		hasher: hasher,
	}
}

func (s *Service) Users() *authrepo.UserRepo { return s.users }
func (s *Service) Shops() *authrepo.ShopRepo { return s.shops }

// EnsureSchema creates the auth tables and indexes. Idempotent; users must
// come first because shops references it.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if err := s.users.EnsureTable(ctx); err != nil {
		return err
	}
	return s.shops.EnsureTable(ctx)
}

// RegisterUser validates the document, hashes the credential, assigns an id
// and inserts the user. Duplicate email/cpf/cnpj returns ErrDuplicateUser.
func (s *Service) RegisterUser(ctx context.Context, in RegisterUserInput) (*entity.User, error) {
	in.CPF = strings.TrimSpace(in.CPF)
	in.CNPJ = strings.TrimSpace(in.CNPJ)

	var cpf, cnpj *string
	switch in.TipoDocumento {
	case entity.DocumentCPF:
		if in.CPF == "" || in.CNPJ != "" {
			return nil, ErrInvalidDocument
		}
		cpf = &in.CPF
	case entity.DocumentCNPJ:
		if in.CNPJ == "" || in.CPF != "" {
			return nil, ErrInvalidDocument
		}
		cnpj = &in.CNPJ
	default:
		return nil, ErrInvalidDocument
	}

	hash, err := s.hasher.Hash(in.Senha)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:            utilities.NewKSUID(),
		Nome:          in.Nome,
		Sobrenome:     in.Sobrenome,
		TipoDocumento: in.TipoDocumento,
		CPF:           cpf,
		CNPJ:          cnpj,
		Email:         in.Email,
		Telefone:      in.Telefone,
		Endereco:      in.Endereco,
		Senha:         hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if database.IsConstraintViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	// read back for store-assigned timestamps
	return s.users.FindByID(ctx, u.ID)
}

// Authenticate checks an email/password pair and returns the user on match.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, senha string) (*entity.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.Senha, senha) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// CreateShop creates a shop for an existing owner. Each owner may have at
// most one shop; a second create returns ErrShopLimitReached.
func (s *Service) CreateShop(ctx context.Context, ownerID, nomeDaLoja string) (*entity.Shop, error) {
	count, err := s.shops.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrShopLimitReached
	}
	sh := &entity.Shop{
		ID:         utilities.NewKSUID(),
		OwnerID:    ownerID,
		NomeDaLoja: nomeDaLoja,
	}
	if err := s.shops.Create(ctx, sh); err != nil {
		return nil, err
	}
	return s.shops.FindByID(ctx, sh.ID)
}
