// Package family defines the directory of wiki families: the lookup service
// the site resolver consults for language codes, obsolete aliases and
// per-language customizations. Implementations live under store; the
// resolver only depends on the Directory port.
package family

//go:generate mockgen -source=family.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"wikisite/internal/family/models"
)

// Directory looks up family configuration by family name.
//
// Implementations return sentinel.ErrNotFound (wrapped) for unknown
// families. Returned Family values are shared and must be treated as
// read-only.
type Directory interface {
	Find(ctx context.Context, name string) (*models.Family, error)
}
