package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/StephanNaro/id-registry/internal/audit"
	"github.com/StephanNaro/id-registry/internal/cache"
	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/internal/generator"
	"github.com/StephanNaro/id-registry/internal/repository"
	"github.com/StephanNaro/id-registry/internal/suspend"
	"github.com/StephanNaro/id-registry/pkg/log"
)

// registryServiceImpl implements RegistryService.
type registryServiceImpl struct {
	ids         repository.IdentifierRepository
	settings    repository.SettingsRepository
	gen         generator.Generator
	gate        *suspend.Gate
	cache       cache.IdentifierCache // nil disables caching
	cacheTTL    time.Duration
	maxAttempts int
}

// NewRegistryService creates a new registry service. idCache may be nil.
func NewRegistryService(
	ids repository.IdentifierRepository,
	settings repository.SettingsRepository,
	gen generator.Generator,
	gate *suspend.Gate,
	idCache cache.IdentifierCache,
	cacheTTL time.Duration,
	maxAttempts int,
) RegistryService {
	if maxAttempts < 1 {
		maxAttempts = 100
	}
	return &registryServiceImpl{
		ids:         ids,
		settings:    settings,
		gen:         gen,
		gate:        gate,
		cache:       idCache,
		cacheTTL:    cacheTTL,
		maxAttempts: maxAttempts,
	}
}

// Generate mints a new identifier for owner. Settings are re-read from the
// store on every call because the setup GUI writes them out-of-band. The
// uniqueness check lives in the insert itself: only a primary-key collision
// is retried, with a fresh candidate each time.
func (s *registryServiceImpl) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.IdentifierResponse, error) {
	l := log.Ctx(ctx)

	if s.gate.Suspended() {
		return nil, ErrSuspended
	}

	owner := strings.TrimSpace(req.Owner)
	if !isValidOwner(owner) {
		return nil, ErrInvalidOwner
	}

	settings, err := s.settings.Read(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate, err := s.gen.Generate(settings.IDLength, settings.Charset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}

		record := &domain.Identifier{
			ID:        candidate,
			Owner:     owner,
			TableName: req.Table,
			UserID:    req.UserID,
		}

		err = s.ids.InsertUnique(ctx, record)
		if err == nil {
			audit.LogWithDetail(ctx, audit.ActionGenerate, record.ID, owner, "identifier generated")
			resp := record.ToResponse()
			return &resp, nil
		}
		if errors.Is(err, repository.ErrIDExists) {
			l.Debug().Int("attempt", attempt).Msg("candidate collision, retrying")
			continue
		}
		return nil, err
	}

	l.Warn().Int("max_attempts", s.maxAttempts).Msg("identifier generation exhausted")
	return nil, ErrExhausted
}

// Preview generates a candidate without persisting it. Read-only, so it is
// not gated.
func (s *registryServiceImpl) Preview(ctx context.Context) (string, error) {
	settings, err := s.settings.Read(ctx)
	if err != nil {
		return "", err
	}

	candidate, err := s.gen.Generate(settings.IDLength, settings.Charset)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return candidate, nil
}

// Confirm marks an identifier confirmed. Confirming twice succeeds both
// times; confirming a soft-deleted identifier is rejected.
func (s *registryServiceImpl) Confirm(ctx context.Context, id string) error {
	if s.gate.Suspended() {
		return ErrSuspended
	}

	err := s.ids.Confirm(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIDNotFound) {
			return ErrIDNotFound
		}
		if errors.Is(err, repository.ErrIDDeleted) {
			return ErrIDDeleted
		}
		return err
	}

	s.invalidate(ctx, id)
	audit.Log(ctx, audit.ActionConfirm, id, "identifier confirmed")
	return nil
}

// Lookup returns the identifier record, including soft-deleted ones. Not
// gated: reads stay available while suspended.
func (s *registryServiceImpl) Lookup(ctx context.Context, id string) (*domain.IdentifierResponse, error) {
	l := log.Ctx(ctx)

	if s.cache != nil {
		key := s.cache.BuildKeyByID(id)
		if cached, err := s.cache.Get(ctx, key); err == nil {
			resp := cached.Identifier.ToResponse()
			return &resp, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Msg("cache lookup failed, falling back to store")
		}
	}

	record, err := s.ids.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIDNotFound) {
			return nil, ErrIDNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		key := s.cache.BuildKeyByID(id)
		if err := s.cache.Set(ctx, key, &cache.IdentifierCacheResult{Identifier: *record}, s.cacheTTL); err != nil {
			l.Warn().Err(err).Msg("failed to cache identifier")
		}
	}

	resp := record.ToResponse()
	return &resp, nil
}

// Delete soft-deletes an identifier; the row stays visible via Lookup.
func (s *registryServiceImpl) Delete(ctx context.Context, id string) error {
	if s.gate.Suspended() {
		return ErrSuspended
	}

	err := s.ids.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIDNotFound) {
			return ErrIDNotFound
		}
		return err
	}

	s.invalidate(ctx, id)
	audit.Log(ctx, audit.ActionDelete, id, "identifier soft-deleted")
	return nil
}

// Suspend gates writes after verifying the admin secret and checkpoints the
// store so a file copy taken afterwards is self-consistent.
func (s *registryServiceImpl) Suspend(ctx context.Context, secret string) error {
	if err := s.authorize(ctx, secret); err != nil {
		return err
	}

	if err := s.gate.Suspend(ctx); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionSuspend, "", "registry suspended")
	return nil
}

// Resume re-admits writes after verifying the admin secret.
func (s *registryServiceImpl) Resume(ctx context.Context, secret string) error {
	if err := s.authorize(ctx, secret); err != nil {
		return err
	}

	s.gate.Resume(ctx)
	audit.Log(ctx, audit.ActionResume, "", "registry resumed")
	return nil
}

// UpdateSettings writes new settings. Gated like every other mutation, and
// authorized with the current stored secret.
func (s *registryServiceImpl) UpdateSettings(ctx context.Context, secret string, req *domain.UpdateSettingsRequest) error {
	if s.gate.Suspended() {
		return ErrSuspended
	}
	if err := s.authorize(ctx, secret); err != nil {
		return err
	}

	if req.IDLength < domain.MinIDLength || req.IDLength > domain.MaxIDLength {
		return fmt.Errorf("%w: id_length %d not in [%d,%d]", ErrInvalidSettings, req.IDLength, domain.MinIDLength, domain.MaxIDLength)
	}
	if req.Charset == "" {
		return fmt.Errorf("%w: charset is empty", ErrInvalidSettings)
	}
	if !strings.ContainsFunc(req.Charset, func(r rune) bool { return r < '0' || r > '9' }) {
		return fmt.Errorf("%w: charset contains only digits", ErrInvalidSettings)
	}

	current, err := s.settings.Read(ctx)
	if err != nil {
		return err
	}

	next := &domain.Settings{
		IDLength:    req.IDLength,
		Charset:     req.Charset,
		AdminSecret: current.AdminSecret,
	}
	if req.AdminSecret != nil && *req.AdminSecret != "" {
		next.AdminSecret = *req.AdminSecret
	}

	if err := s.settings.Write(ctx, next); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionSettings, "", fmt.Sprintf("id_length=%d", next.IDLength), "settings updated")
	return nil
}

// Health reports the gate state. Not gated.
func (s *registryServiceImpl) Health(ctx context.Context) *domain.HealthResponse {
	status, changedAt := s.gate.Status()
	resp := &domain.HealthResponse{Status: status}
	if status == suspend.StatusSuspended {
		resp.SuspendedAt = &changedAt
	}
	return resp
}

// authorize compares secret verbatim against the freshly-read admin secret.
// The error is identical whatever the gate state, so a caller probing with a
// bad secret learns nothing.
func (s *registryServiceImpl) authorize(ctx context.Context, secret string) error {
	settings, err := s.settings.Read(ctx)
	if err != nil {
		return err
	}
	if secret == "" || secret != settings.AdminSecret {
		return ErrUnauthorized
	}
	return nil
}

func (s *registryServiceImpl) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.BuildKeyByID(id)); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldID, id).Msg("failed to invalidate cache")
	}
}

// isValidOwner reports whether owner is non-empty and restricted to
// letters, digits and underscores.
func isValidOwner(owner string) bool {
	if owner == "" {
		return false
	}
	for _, r := range owner {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
