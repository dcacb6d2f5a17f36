package entity

// Shop is a store owned by a user. A shop cannot exist without a valid
// owner: deleting the owner cascades deletion of the shop.
type Shop struct {
	ID         string `db:"id"`
	OwnerID    string `db:"ownerId"`
	NomeDaLoja string `db:"nomeDaLoja"`
	CreatedAt  string `db:"createdAt"`
	UpdatedAt  string `db:"updatedAt"`
}

// ShopPatch is a typed partial update for shops. OwnerID is not patchable;
// ownership transfers are not a supported operation.
type ShopPatch struct {
	NomeDaLoja *string
}
