// Package storage persists the whole post collection as one unit.
//
// Every backend implements the same wholesale contract: LoadAll reads the
// entire collection (empty slice when nothing is stored yet), SaveAll
// replaces it. There are no partial or incremental writes anywhere in the
// system, so the contract stays deliberately small.
package storage

import (
	"context"

	"github.com/d60-Lab/osuda/internal/model"
)

type Storage interface {
	LoadAll(ctx context.Context) ([]model.Post, error)
	SaveAll(ctx context.Context, posts []model.Post) error
}
