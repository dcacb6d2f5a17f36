package repo

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/saborvila/poscore/internal/auth/entity"
	"github.com/saborvila/poscore/pkg/database"
)

func newTestStore(t *testing.T) (*sqlx.DB, *UserRepo, *ShopRepo) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepo(db)
	shops := NewShopRepo(db)
	ctx := context.Background()
	require.NoError(t, users.EnsureTable(ctx))
	require.NoError(t, shops.EnsureTable(ctx))
	return db, users, shops
}

func strptr(s string) *string { return &s }

func sampleUser(id, email string, cpf *string) *entity.User {
	doc := entity.DocumentCNPJ
	if cpf != nil {
		doc = entity.DocumentCPF
	}
	return &entity.User{
		ID:            id,
		Nome:          "Maria",
		Sobrenome:     "Silva",
		TipoDocumento: doc,
		CPF:           cpf,
		Email:         email,
		Telefone:      "11 99999-0000",
		Endereco:      "Rua das Flores, 12",
		Senha:         "$2b$12$not-a-real-hash",
	}
}

func TestUserCreateFindByEmailRoundTrip(t *testing.T) {
	_, users, _ := newTestStore(t)
	ctx := context.Background()

	in := sampleUser("u1", "maria@example.com", strptr("12345678900"))
	require.NoError(t, users.Create(ctx, in))

	got, err := users.FindByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, in.ID, got.ID)
	require.Equal(t, in.Nome, got.Nome)
	require.Equal(t, in.Sobrenome, got.Sobrenome)
	require.Equal(t, in.TipoDocumento, got.TipoDocumento)
	require.Equal(t, in.CPF, got.CPF)
	require.Nil(t, got.CNPJ)
	require.Equal(t, in.Telefone, got.Telefone)
	require.Equal(t, in.Endereco, got.Endereco)
	require.Equal(t, in.Senha, got.Senha)
	// timestamps are assigned by the store
	require.NotEmpty(t, got.CreatedAt)
	require.NotEmpty(t, got.UpdatedAt)
}

func TestUserFindNotFound(t *testing.T) {
	_, users, _ := newTestStore(t)
	ctx := context.Background()

	_, err := users.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, database.ErrNotFound)

	_, err = users.FindByCPF(ctx, "00000000000")
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestUserDuplicateCPFFails(t *testing.T) {
	_, users, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))
	err := users.Create(ctx, sampleUser("u2", "b@example.com", strptr("111")))
	require.Error(t, err)
	require.True(t, database.IsConstraintViolation(err))
}

func TestUserNullCPFDoesNotCollide(t *testing.T) {
	_, users, _ := newTestStore(t)
	ctx := context.Background()

	u1 := sampleUser("u1", "a@example.com", nil)
	u1.CNPJ = strptr("11222333000144")
	u2 := sampleUser("u2", "b@example.com", nil)
	u2.CNPJ = strptr("55666777000188")
	require.NoError(t, users.Create(ctx, u1))
	require.NoError(t, users.Create(ctx, u2))
}

func TestUserDuplicateEmailFails(t *testing.T) {
	_, users, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "same@example.com", strptr("111"))))
	err := users.Create(ctx, sampleUser("u2", "same@example.com", strptr("222")))
	require.True(t, database.IsConstraintViolation(err))
}

func TestUserPartialUpdate(t *testing.T) {
	db, users, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))

	require.NoError(t, users.Update(ctx, "u1", entity.UserPatch{Telefone: strptr("11 88888-7777")}))
	got, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "11 88888-7777", got.Telefone)
	require.Equal(t, "Maria", got.Nome) // untouched

	// an empty patch still refreshes updatedAt
	_, err = db.Exec(`UPDATE users SET updatedAt = '2000-01-01 00:00:00' WHERE id = 'u1'`)
	require.NoError(t, err)
	require.NoError(t, users.Update(ctx, "u1", entity.UserPatch{}))
	got, err = users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.NotEqual(t, "2000-01-01 00:00:00", got.UpdatedAt)
}

func TestShopRequiresExistingOwner(t *testing.T) {
	_, _, shops := newTestStore(t)
	ctx := context.Background()

	err := shops.Create(ctx, &entity.Shop{ID: "s1", OwnerID: "ghost", NomeDaLoja: "Mercadinho"})
	require.Error(t, err)
	require.True(t, database.IsConstraintViolation(err))
}

func TestDeleteUserCascadesShops(t *testing.T) {
	db, users, shops := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))
	require.NoError(t, shops.Create(ctx, &entity.Shop{ID: "s1", OwnerID: "u1", NomeDaLoja: "Loja A"}))
	require.NoError(t, shops.Create(ctx, &entity.Shop{ID: "s2", OwnerID: "u1", NomeDaLoja: "Loja B"}))

	// the core defines no user delete; removal happens at the store level
	// and the schema's ON DELETE CASCADE takes over
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = 'u1'`)
	require.NoError(t, err)

	got, err := shops.FindByOwnerID(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCountByOwnerID(t *testing.T) {
	_, users, shops := newTestStore(t)
	ctx := context.Background()

	n, err := shops.CountByOwnerID(ctx, "unknown-owner")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))
	require.NoError(t, shops.Create(ctx, &entity.Shop{ID: "s1", OwnerID: "u1", NomeDaLoja: "Loja A"}))
	require.NoError(t, shops.Create(ctx, &entity.Shop{ID: "s2", OwnerID: "u1", NomeDaLoja: "Loja B"}))

	n, err = shops.CountByOwnerID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestShopUpdateAndDelete(t *testing.T) {
	_, users, shops := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))
	require.NoError(t, shops.Create(ctx, &entity.Shop{ID: "s1", OwnerID: "u1", NomeDaLoja: "Loja A"}))

	require.NoError(t, shops.Update(ctx, "s1", entity.ShopPatch{NomeDaLoja: strptr("Loja Renovada")}))
	got, err := shops.FindByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "Loja Renovada", got.NomeDaLoja)

	require.NoError(t, shops.Delete(ctx, "s1"))
	_, err = shops.FindByID(ctx, "s1")
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestEnsureTablesIdempotent(t *testing.T) {
	_, users, shops := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, sampleUser("u1", "a@example.com", strptr("111"))))

	// a second cold start must not disturb structure or rows
	require.NoError(t, users.EnsureTable(ctx))
	require.NoError(t, shops.EnsureTable(ctx))

	got, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", got.Email)
}
