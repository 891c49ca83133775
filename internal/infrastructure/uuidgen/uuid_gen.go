package uuidgen

import (
	"github.com/google/uuid"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
)

// Generator issues time-ordered (v7) UUIDs for document ids, so _id order
// roughly follows insertion order.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

var _ contract.IUUIDGenerator = (*Generator)(nil)

func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
