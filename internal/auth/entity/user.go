package entity

// Document types accepted on registration. Exactly one of CPF/CNPJ is
// populated on a user, matching TipoDocumento.
const (
	DocumentCPF  = "CPF"
	DocumentCNPJ = "CNPJ"
)

// User represents an account row in the `users` table. Senha holds an
// opaque credential: hashing happens before the value reaches the
// repository. Timestamps are assigned by the store as datetime text.
type User struct {
	ID            string  `db:"id"`
	Nome          string  `db:"nome"`
	Sobrenome     string  `db:"sobrenome"`
	TipoDocumento string  `db:"tipoDocumento"`
	CPF           *string `db:"cpf"`
	CNPJ          *string `db:"cnpj"`
	Email         string  `db:"email"`
	Telefone      string  `db:"telefone"`
	Endereco      string  `db:"endereco"`
	Senha         string  `db:"senha"`
	CreatedAt     string  `db:"createdAt"`
	UpdatedAt     string  `db:"updatedAt"`
}

// UserPatch is a typed partial update. Nil fields are left untouched.
// The id is immutable and deliberately absent.
type UserPatch struct {
	Nome      *string
	Sobrenome *string
	Email     *string
	Telefone  *string
	Endereco  *string
	Senha     *string
}
