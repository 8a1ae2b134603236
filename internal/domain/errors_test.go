package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   ErrorKind
		status int
		name   string
	}{
		{KindUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{KindMalformedHandle, http.StatusBadRequest, "malformed_handle"},
		{KindPlayerNotFound, http.StatusNotFound, "player_not_found"},
		{KindCatalogMisconfigured, http.StatusInternalServerError, "catalog_misconfigured"},
		{KindPersistenceFailed, http.StatusInternalServerError, "persistence_failed"},
		{KindUpstreamOrInternal, http.StatusInternalServerError, "upstream_or_internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
			assert.Equal(t, tt.name, tt.kind.String())
		})
	}
}

func TestSyncErrorChain(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("sync: %w", NewSyncError(KindPersistenceFailed, "Failed to save stats. Please try again.", cause))

	assert.Equal(t, KindPersistenceFailed, KindOf(err))
	assert.Equal(t, "Failed to save stats. Please try again.", UserMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "database is locked")

	plain := errors.New("boom")
	assert.Equal(t, KindUpstreamOrInternal, KindOf(plain))
	assert.Equal(t, "boom", UserMessage(plain))

	bare := NewSyncError(KindUnauthorized, "Unauthorized", nil)
	assert.Equal(t, "Unauthorized", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "TenZ#0505", Handle{Name: "TenZ", Tag: "0505"}.String())
}
