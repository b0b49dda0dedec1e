package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGetUserIDFromContext(t *testing.T) {
	userID := uuid.New()

	got, ok := getUserIDFromContext(newRequest(t, http.MethodGet, "/", nil, userID, nil, language.Japanese))
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = getUserIDFromContext(newRequest(t, http.MethodGet, "/", nil, uuid.Nil, nil, language.Japanese))
	assert.False(t, ok)
}

func TestGetPathUUID(t *testing.T) {
	id := uuid.New()

	got, err := getPathUUID(newRequest(t, http.MethodGet, "/", nil, uuid.Nil,
		map[string]string{"id": id.String()}, language.Japanese), "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = getPathUUID(newRequest(t, http.MethodGet, "/", nil, uuid.Nil,
		map[string]string{"id": "not-a-uuid"}, language.Japanese), "id")
	assert.True(t, errors.Is(err, domain.ErrInvalidID))

	_, err = getPathUUID(newRequest(t, http.MethodGet, "/", nil, uuid.Nil, nil, language.Japanese), "id")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestGetPathInt(t *testing.T) {
	got, err := getPathInt(newRequest(t, http.MethodGet, "/", nil, uuid.Nil,
		map[string]string{"year": "2024"}, language.Japanese), "year")
	require.NoError(t, err)
	assert.Equal(t, 2024, got)

	_, err = getPathInt(newRequest(t, http.MethodGet, "/", nil, uuid.Nil,
		map[string]string{"year": "abc"}, language.Japanese), "year")
	assert.True(t, errors.Is(err, domain.ErrInvalidFormat))
}

func TestGetQueryBool(t *testing.T) {
	tests := []struct {
		query   string
		want    bool
		wantErr bool
	}{
		{"", false, false},
		{"?all=true", true, false},
		{"?all=0", false, false},
		{"?all=maybe", false, true},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/projects"+tc.query, nil)
		got, err := getQueryBool(req, "all")
		if tc.wantErr {
			assert.Error(t, err, tc.query)
			continue
		}
		assert.NoError(t, err, tc.query)
		assert.Equal(t, tc.want, got, tc.query)
	}
}

func TestHandleUserIDAndPathUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := newRequest(t, http.MethodGet, "/", nil, uuid.Nil, map[string]string{"id": uuid.NewString()}, language.English)
	_, _, ok := handleUserIDAndPathUUID(rec, req, "id", discardLogger())
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = newRequest(t, http.MethodGet, "/", nil, uuid.New(), map[string]string{"id": "123"}, language.English)
	_, _, ok = handleUserIDAndPathUUID(rec, req, "id", discardLogger())
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: id has invalid format", decodeError(t, rec).Error)
}
