package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eldercare/internal/errs"
	"eldercare/internal/model"
	"eldercare/internal/repository"
	"eldercare/internal/storage"
)

// ProfileStore persists the identity profile and reconciles it with the
// elder-info record maintained by the elder-info screen.
type ProfileStore struct {
	kv   storage.KV
	seed model.Profile
}

var _ repository.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates a ProfileStore. seed is the application-level
// default adopted on first use when neither a profile nor a usable
// elder-info record exists.
func NewProfileStore(kv storage.KV, seed model.Profile) *ProfileStore {
	return &ProfileStore{kv: kv, seed: seed}
}

func (s *ProfileStore) Get(ctx context.Context) (model.Profile, error) {
	raw, err := s.kv.Get(ctx, profileKey)
	switch {
	case err == nil:
		var p model.Profile
		if json.Unmarshal(raw, &p) == nil {
			return p, nil
		}
		// malformed record: fall through as if absent
	case !errors.Is(err, errs.ErrNotFound):
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	if p, ok, err := s.adoptElderInfo(ctx); err != nil {
		return model.Profile{}, err
	} else if ok {
		return p, nil
	}

	if err := s.put(ctx, s.seed); err != nil {
		return model.Profile{}, err
	}
	return s.seed, nil
}

// adoptElderInfo promotes the elder-info record to a profile when it carries
// both a name and a birth date.
func (s *ProfileStore) adoptElderInfo(ctx context.Context) (model.Profile, bool, error) {
	raw, err := s.kv.Get(ctx, elderInfoKey)
	if errors.Is(err, errs.ErrNotFound) {
		return model.Profile{}, false, nil
	}
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("reading elder info: %w", err)
	}

	var elder struct {
		Name      string `json:"name"`
		BirthDate string `json:"birthDate"`
	}
	if json.Unmarshal(raw, &elder) != nil || elder.Name == "" || elder.BirthDate == "" {
		return model.Profile{}, false, nil
	}

	p := model.Profile{ElderName: elder.Name, BirthDate: elder.BirthDate}
	if err := s.put(ctx, p); err != nil {
		return model.Profile{}, false, err
	}
	return p, true, nil
}

func (s *ProfileStore) Save(ctx context.Context, p model.Profile) error {
	if err := s.put(ctx, p); err != nil {
		return err
	}
	return s.patchElderInfo(ctx, p)
}

func (s *ProfileStore) put(ctx context.Context, p model.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.kv.Set(ctx, profileKey, raw); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// patchElderInfo propagates name and birth date into the elder-info record,
// preserving every other field. Propagation is one-way; a missing or
// malformed elder-info record is left alone.
func (s *ProfileStore) patchElderInfo(ctx context.Context, p model.Profile) error {
	raw, err := s.kv.Get(ctx, elderInfoKey)
	if errors.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading elder info: %w", err)
	}

	var elder map[string]any
	if json.Unmarshal(raw, &elder) != nil {
		return nil
	}
	elder["name"] = p.ElderName
	elder["birthDate"] = p.BirthDate

	patched, err := json.Marshal(elder)
	if err != nil {
		return fmt.Errorf("encoding elder info: %w", err)
	}
	if err := s.kv.Set(ctx, elderInfoKey, patched); err != nil {
		return fmt.Errorf("writing elder info: %w", err)
	}
	return nil
}
