package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

type stubPreferenceRepo struct {
	byEmail map[string]*entities.EmailPreference
	created int
	updated int
}

func newStubPreferenceRepo() *stubPreferenceRepo {
	return &stubPreferenceRepo{byEmail: map[string]*entities.EmailPreference{}}
}

func (s *stubPreferenceRepo) GetByEmail(_ context.Context, email string) (*entities.EmailPreference, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("no preferences for " + email)
}

func (s *stubPreferenceRepo) Create(_ context.Context, p *entities.EmailPreference) error {
	s.byEmail[p.Email] = p
	s.created++
	return nil
}

func (s *stubPreferenceRepo) Update(_ context.Context, p *entities.EmailPreference) error {
	s.byEmail[p.Email] = p
	s.updated++
	return nil
}

func TestPreferenceService_GetLazilyCreates(t *testing.T) {
	repo := newStubPreferenceRepo()
	service := NewPreferenceService(repo)

	preference, err := service.Get(context.Background(), "User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", preference.Email)
	assert.NotEmpty(t, preference.ID)
	assert.Empty(t, preference.States)
	assert.Equal(t, 1, repo.created)

	// Second read returns the same row without creating again.
	again, err := service.Get(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, preference.ID, again.ID)
	assert.Equal(t, 1, repo.created)
}

func TestPreferenceService_SaveReplacesSelections(t *testing.T) {
	repo := newStubPreferenceRepo()
	service := NewPreferenceService(repo)

	saved, err := service.Save(context.Background(), "user@example.com",
		[]string{" OHIO ", "", "ALASKA"}, []string{"DENTAL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OHIO", "ALASKA"}, saved.States)
	assert.Equal(t, []string{"DENTAL"}, saved.Categories)
	assert.Equal(t, 1, repo.updated)
}

func TestPreferenceService_RejectsBadEmail(t *testing.T) {
	service := NewPreferenceService(newStubPreferenceRepo())

	_, err := service.Get(context.Background(), "not-an-email")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}
