// Package store holds the in-memory recipe collection and the favorite
// set. It owns both for the process lifetime; admin edits live only
// here and are gone on restart. Favorites are written through to the
// persistent key-value store on every toggle.
package store

import (
	"encoding/json"
	"sync"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Store is the entity store. Safe for concurrent access; the data-file
// watcher may reload the collection from its own goroutine.
type Store struct {
	mu       sync.RWMutex
	recipes  []*domain.Recipe // insertion order
	byID     map[int]*domain.Recipe
	favs     map[int]bool
	favOrder []int // toggle order, persisted as-is
	kv       domain.KeyValue
	log      *logger.Logger
}

// New creates an empty store backed by the given key-value collaborator.
func New(kv domain.KeyValue, log *logger.Logger) *Store {
	return &Store{
		byID: make(map[int]*domain.Recipe),
		favs: make(map[int]bool),
		kv:   kv,
		log:  log,
	}
}

// Load replaces the collection with the payload's recipe list. A nil
// payload or one without the list rejects the whole load and leaves the
// collection empty; favorites are never touched by a load.
func (s *Store) Load(payload *domain.CatalogPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payload == nil || payload.Recipes == nil {
		s.recipes = nil
		s.byID = make(map[int]*domain.Recipe)
		s.log.Error("catalog payload missing recipe list, collection left empty")
		return domain.ErrInvalidPayload
	}

	s.recipes = make([]*domain.Recipe, 0, len(payload.Recipes))
	s.byID = make(map[int]*domain.Recipe, len(payload.Recipes))
	for i := range payload.Recipes {
		r := payload.Recipes[i].Clone()
		s.recipes = append(s.recipes, r)
		s.byID[r.ID] = r
	}
	s.log.Info("loaded %d recipes", len(s.recipes))
	return nil
}

// Add appends a recipe, assigning a fresh id when none was supplied or
// the supplied one is already taken. Returns the id.
func (s *Store) Add(r *domain.Recipe) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := r.Clone()
	if cp.ID == 0 || s.byID[cp.ID] != nil {
		cp.ID = s.nextID()
	}
	s.recipes = append(s.recipes, cp)
	s.byID[cp.ID] = cp
	s.log.Info("recipe added: %q (id=%d)", cp.Name, cp.ID)
	return cp.ID
}

// nextID returns max(existing)+1, starting at 1. Callers hold the lock.
func (s *Store) nextID() int {
	max := 0
	for id := range s.byID {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Update merges non-nil patch fields into the recipe. Returns false
// when the id is absent; the recipe is untouched on that path.
func (s *Store) Update(id int, patch domain.RecipePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		s.log.Debug("update: recipe %d not found", id)
		return false
	}

	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Country != nil {
		r.Country = *patch.Country
	}
	if patch.TimeMinutes != nil {
		r.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Categories != nil {
		r.Categories = append([]string(nil), patch.Categories...)
	}
	if patch.Ingredients != nil {
		r.Ingredients = append([]domain.Ingredient(nil), patch.Ingredients...)
	}
	if patch.Instructions != nil {
		r.Instructions = append([]string(nil), patch.Instructions...)
	}
	if patch.Rating != nil {
		r.Rating = *patch.Rating
	}
	if patch.Reviews != nil {
		r.Reviews = *patch.Reviews
	}
	if patch.Image != nil {
		r.Image = *patch.Image
	}
	s.log.Info("recipe updated: %q (id=%d)", r.Name, id)
	return true
}

// Remove deletes a recipe. Returns false when the id is absent. The
// favorite set is deliberately left alone: a dangling favorite id is
// tolerated and filtered out at read time.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, r := range s.recipes {
		if r.ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			break
		}
	}
	s.log.Info("recipe removed: id=%d", id)
	return true
}

// Find returns a recipe by id.
func (s *Store) Find(id int) (*domain.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// All returns the collection in insertion order.
func (s *Store) All() []*domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Recipe(nil), s.recipes...)
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// ToggleFavorite flips membership for the id and persists the full set.
// Returns the new membership state.
func (s *Store) ToggleFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favs[id] {
		delete(s.favs, id)
		for i, fid := range s.favOrder {
			if fid == id {
				s.favOrder = append(s.favOrder[:i], s.favOrder[i+1:]...)
				break
			}
		}
	} else {
		s.favs[id] = true
		s.favOrder = append(s.favOrder, id)
	}
	s.persistFavorites()
	return s.favs[id]
}

// IsFavorite reports membership for the id.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favs[id]
}

// FavoriteIDs returns the favorite ids in toggle order. The list may
// contain ids whose recipes were deleted since.
func (s *Store) FavoriteIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.favOrder...)
}

// RestoreFavorites reads the persisted favorite list. Called once at
// startup; a missing or corrupt blob just means an empty set.
func (s *Store) RestoreFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(domain.KeyFavorites)
	if err != nil || raw == "" {
		return
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("favorites blob unreadable, starting empty: %v", err)
		return
	}
	s.favOrder = ids
	s.favs = make(map[int]bool, len(ids))
	for _, id := range ids {
		s.favs[id] = true
	}
	s.log.Debug("restored %d favorites", len(ids))
}

// persistFavorites writes the full ordered id list. Callers hold the
// lock. A write failure is logged, not surfaced: the in-memory set is
// authoritative for the rest of the run.
func (s *Store) persistFavorites() {
	blob, err := json.Marshal(s.favOrder)
	if err != nil {
		s.log.Error("encoding favorites: %v", err)
		return
	}
	if err := s.kv.Set(domain.KeyFavorites, string(blob)); err != nil {
		s.log.Error("persisting favorites: %v", err)
	}
}
