package repo

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saborvila/poscore/internal/auth/entity"
	"github.com/saborvila/poscore/pkg/database"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table and its indexes if absent (idempotent,
// safe on every cold start). Failures are fatal for initialization.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  nome TEXT NOT NULL,
  sobrenome TEXT NOT NULL,
  tipoDocumento TEXT NOT NULL CHECK (tipoDocumento IN ('CPF', 'CNPJ')),
  cpf TEXT UNIQUE,
  cnpj TEXT UNIQUE,
  email TEXT NOT NULL UNIQUE,
  telefone TEXT NOT NULL,
  endereco TEXT NOT NULL,
  senha TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT (datetime('now')),
  updatedAt TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_cpf ON users(cpf);
CREATE INDEX IF NOT EXISTS idx_users_cnpj ON users(cnpj);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return &database.SchemaError{Table: "users", Err: err}
	}
	return nil
}

// Create inserts a full user row. Duplicate email/cpf/cnpj surfaces as
// ConstraintViolation; the row is not partially written.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `
INSERT INTO users (id, nome, sobrenome, tipoDocumento, cpf, cnpj, email, telefone, endereco, senha)
VALUES (:id, :nome, :sobrenome, :tipoDocumento, :cpf, :cnpj, :email, :telefone, :endereco, :senha)`
	_, err := r.db.NamedExecContext(ctx, q, u)
	return database.WrapWrite("create user", err)
}

const userColumns = `id, nome, sobrenome, tipoDocumento, cpf, cnpj, email, telefone, endereco, senha, createdAt, updatedAt`

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	var u entity.User
	q := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	if err := r.db.GetContext(ctx, &u, q, arg); err != nil {
		return nil, database.WrapRead(op, err)
	}
	return &u, nil
}

// FindByID returns the user or database.ErrNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "find user by id", "id = ?", id)
}

// FindByEmail returns the user or database.ErrNotFound.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "find user by email", "email = ?", email)
}

// FindByCPF returns the user or database.ErrNotFound.
func (r *UserRepo) FindByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	return r.findOne(ctx, "find user by cpf", "cpf = ?", cpf)
}

// FindByCNPJ returns the user or database.ErrNotFound.
func (r *UserRepo) FindByCNPJ(ctx context.Context, cnpj string) (*entity.User, error) {
	return r.findOne(ctx, "find user by cnpj", "cnpj = ?", cnpj)
}

// Update rewrites only the supplied fields and refreshes updatedAt. A patch
// with no fields set still touches updatedAt. Identity is immutable: there
// is no way to patch the id.
func (r *UserRepo) Update(ctx context.Context, id string, p entity.UserPatch) error {
	set := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			set = append(set, col+" = ?")
			args = append(args, *v)
		}
	}
	add("nome", p.Nome)
	add("sobrenome", p.Sobrenome)
	add("email", p.Email)
	add("telefone", p.Telefone)
	add("endereco", p.Endereco)
	add("senha", p.Senha)

	set = append(set, "updatedAt = datetime('now')")
	args = append(args, id)
	q := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, args...)
	return database.WrapWrite("update user", err)
}
