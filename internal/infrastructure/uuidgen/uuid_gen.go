package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
)

// Generator produces random (v4) ids for users and courses.
type Generator struct{}

var _ contract.IUUIDGenerator = (*Generator)(nil)

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

func (g *Generator) NewUUID() string {
	return uuid.NewString()
}
