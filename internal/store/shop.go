package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

// OwnedSkins returns the ids of skins the user owns.
func (s *Store) OwnedSkins() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ownedSkins)
}

// ActiveSkin returns the id of the skin in use.
func (s *Store) ActiveSkin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSkin
}

// PurchaseSkin buys skin id with coins.
func (s *Store) PurchaseSkin(ctx context.Context, id string) error {
	skin, ok := model.FindSkin(id)
	if !ok {
		return notFound("skin", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.ownedSkins, id) {
		return model.ErrAlreadyOwned
	}
	if s.profile.Coins < skin.Price {
		return fmt.Errorf("%w: %s costs %d, you have %d", model.ErrInsufficientCoins, skin.Name, skin.Price, s.profile.Coins)
	}

	owned := append(slices.Clone(s.ownedSkins), id)
	profile := s.profile
	profile.Coins -= skin.Price
	if err := s.persist(ctx,
		change{kv.KeyProfile, profile, s.profile},
		change{kv.KeyOwnedSkins, owned, s.ownedSkins},
	); err != nil {
		return err
	}
	s.profile = profile
	s.ownedSkins = owned
	logger.Info("Skin purchased", logger.F("skin", id), logger.F("price", skin.Price))
	return nil
}

// SetActiveSkin switches to an owned skin.
func (s *Store) SetActiveSkin(ctx context.Context, id string) error {
	if _, ok := model.FindSkin(id); !ok {
		return notFound("skin", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.ownedSkins, id) {
		return invalid("skin " + id + " is not owned")
	}
	if err := s.persist(ctx, change{kv.KeyActiveSkin, id, s.activeSkin}); err != nil {
		return err
	}
	s.activeSkin = id
	return nil
}
