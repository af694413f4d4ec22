package vanity

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoEntropy = errors.New("entropy source unavailable")

type failingKeySource struct{}

func (failingKeySource) Next() (*btcec.PrivateKey, error) {
	return nil, errNoEntropy
}

func TestNewSearcherWorkerBounds(t *testing.T) {
	s := NewSearcher(0)
	assert.GreaterOrEqual(t, s.Workers(), 1)
	assert.LessOrEqual(t, s.Workers(), DefaultMaxWorkers)

	assert.Equal(t, 1, NewSearcher(1).Workers())
	assert.Equal(t, 3, NewSearcher(3).Workers())
}

func TestGenerateRejected(t *testing.T) {
	s := NewSearcher(1)

	tests := []struct {
		name     string
		prefix   string
		suffix   string
		maxTries uint64
	}{
		{name: "prefix length 9", prefix: "ABCDEFGHJ", maxTries: 10},
		{name: "suffix length 9", suffix: "ABCDEFGHJ", maxTries: 10},
		{name: "zero budget", maxTries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := s.Generate(context.Background(), NewToken(), tt.prefix, tt.suffix, tt.maxTries)
			require.NoError(t, err)
			assert.Equal(t, Rejected, outcome.Kind)
			assert.NotEmpty(t, outcome.Reason)
			assert.Zero(t, outcome.Tries)
		})
	}
}

func TestGenerateLengthBoundaryAccepted(t *testing.T) {
	s := NewSearcher(1)

	// Eight characters is the limit: the search runs (and exhausts its
	// tiny budget) instead of being rejected.
	outcome, err := s.Generate(context.Background(), NewToken(), "ABCDEFGH", "", 2)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, outcome.Kind)
}

func TestGenerateEmptyCriteriaFound(t *testing.T) {
	s := NewSearcher(1)

	outcome, err := s.Generate(context.Background(), NewToken(), "", "", 10)
	require.NoError(t, err)
	require.Equal(t, Found, outcome.Kind)

	// Vacuous criteria match the very first candidate.
	assert.Equal(t, uint64(1), outcome.Tries)
	assert.Equal(t, Legacy, outcome.Encoding)
	assert.NotEmpty(t, outcome.WIF)

	// The reported key must re-derive to the reported address.
	raw, err := hex.DecodeString(outcome.PrivateKey)
	require.NoError(t, err)
	priv, _ := btcec.PrivKeyFromBytes(raw)
	assert.Equal(t, outcome.Address, Derive(priv, outcome.Encoding).Encoded)
}

func TestGenerateStoppedBeforeWork(t *testing.T) {
	s := NewSearcher(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := s.Generate(ctx, NewToken(), "AB", "", 1000)
	require.NoError(t, err)
	assert.Equal(t, Stopped, outcome.Kind)
	assert.Zero(t, outcome.Tries)
	assert.Empty(t, outcome.Address)
}

func TestGenerateStopDuringSearch(t *testing.T) {
	s := NewSearcher(2)
	token := NewToken()

	go func() {
		time.Sleep(20 * time.Millisecond)
		token.Stop()
	}()

	// The '0' prefix can never match, so only the stop ends the search.
	outcome, err := s.Generate(context.Background(), token, "0", "", 1<<62)
	require.NoError(t, err)
	assert.Equal(t, Stopped, outcome.Kind)
	assert.Empty(t, outcome.Address)
}

func TestGenerateExhaustedAccounting(t *testing.T) {
	const (
		workers  = 2
		maxTries = 5
	)
	s := NewSearcher(workers)

	outcome, err := s.Generate(context.Background(), NewToken(), "0", "", maxTries)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, outcome.Kind)

	// Full budget on both encodings: every worker runs to completion.
	want := uint64(workers * maxTries * len(Encodings))
	assert.Equal(t, want, outcome.Tries)
	assert.Equal(t, want, s.Stats().Attempts)
}

func TestGenerateAtMostOneSuccess(t *testing.T) {
	// Loose criteria with many workers: several candidates match within
	// budget, but exactly one coherent result must come back.
	s := NewSearcher(4)

	for i := 0; i < 5; i++ {
		outcome, err := s.Generate(context.Background(), NewToken(), "", "", 1000)
		require.NoError(t, err)
		require.Equal(t, Found, outcome.Kind)

		raw, err := hex.DecodeString(outcome.PrivateKey)
		require.NoError(t, err)
		priv, _ := btcec.PrivKeyFromBytes(raw)
		assert.Equal(t, outcome.Address, Derive(priv, outcome.Encoding).Encoded,
			"result slot must never hold a corrupted merge")
	}
}

func TestGenerateEntropyFailureIsFatal(t *testing.T) {
	s := NewSearcher(2)
	s.keys = failingKeySource{}

	_, err := s.Generate(context.Background(), NewToken(), "", "", 10)
	assert.ErrorIs(t, err, errNoEntropy)
}

func TestGenerateTokenReusedAfterReset(t *testing.T) {
	s := NewSearcher(1)
	token := NewToken()
	token.Stop()

	// Generate resets the token at the start of every orchestrated search.
	outcome, err := s.Generate(context.Background(), token, "", "", 10)
	require.NoError(t, err)
	assert.Equal(t, Found, outcome.Kind)
}
