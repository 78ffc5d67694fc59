package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oficinaflow/oficina-api/internal/httperr"
)

func TestNormalize(t *testing.T) {
	// status vazio de registros legados conta como pendente
	assert.Equal(t, StatusPending, Normalize(""))
	assert.Equal(t, StatusInProgress, Normalize("in_progress"))
}

func TestNextOnAccept(t *testing.T) {
	next, err := NextOnAccept(StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, next)

	next, err = NextOnAccept(StatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, StatusFinished, next)

	// rejeitada pode ser reaceita
	next, err = NextOnAccept(StatusRejected)
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, next)
}

func TestNextOnAcceptEstadosFinais(t *testing.T) {
	for _, s := range []Status{StatusFinished, StatusCancelled} {
		_, err := NextOnAccept(s)
		assert.True(t, httperr.IsBusiness(err, "request_not_acceptable"), "status %s", s)
	}
}

func TestNextOnReject(t *testing.T) {
	next, err := NextOnReject(StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	// em andamento não volta para rejeitada: é cancelada
	next, err = NextOnReject(StatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)

	for _, s := range []Status{StatusFinished, StatusRejected, StatusCancelled} {
		_, err := NextOnReject(s)
		assert.True(t, httperr.IsBusiness(err, "request_not_rejectable"), "status %s", s)
	}
}

func TestCanDelete(t *testing.T) {
	assert.NoError(t, CanDelete(StatusPending))
	assert.NoError(t, CanDelete(StatusInProgress))
	assert.NoError(t, CanDelete(StatusRejected))
	assert.NoError(t, CanDelete(StatusCancelled))

	err := CanDelete(StatusFinished)
	assert.True(t, httperr.IsBusiness(err, "request_finished"))
}

func TestIsOutstanding(t *testing.T) {
	assert.True(t, IsOutstanding(StatusPending))
	assert.True(t, IsOutstanding(StatusInProgress))

	assert.False(t, IsOutstanding(StatusFinished))
	assert.False(t, IsOutstanding(StatusRejected))
	assert.False(t, IsOutstanding(StatusCancelled))
}
