package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
	"github.com/hobbylab/hobbylab-core/internal/domain/hobby"
	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

func sampleTree() hobby.Tree {
	g := hobby.NewGraph()
	g.InsertHobby(hobby.Hobby{ID: "h1", Name: "Pottery", Category: hobby.CategoryCrafts})
	g.InsertSession(hobby.Session{ID: "s1", HobbyID: "h1", Date: time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC), Duration: 45 * time.Minute})
	return g.ToTree()
}

func TestTree_SealAndOpen(t *testing.T) {
	env, err := SealTree(sampleTree())
	require.NoError(t, err)
	assert.Len(t, env.Checksum, 64)

	tree, err := OpenTree(env)
	require.NoError(t, err)
	require.Len(t, tree.Hobbies, 1)
	assert.Equal(t, "Pottery", tree.Hobbies[0].Name)
	assert.Equal(t, hobby.TreeVersion, tree.Version)
}

func TestOpen_RejectsTamperedPayload(t *testing.T) {
	env, err := SealTree(sampleTree())
	require.NoError(t, err)

	env.Payload = append([]byte{}, env.Payload...)
	env.Payload[len(env.Payload)-2] = ' '

	_, err = OpenTree(env)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.ErrorIs(t, err, shared.ErrCorruptedSnapshot)
	assert.True(t, shared.IsStorage(err))
}

func TestOpenTree_RejectsNewerVersion(t *testing.T) {
	env, err := Seal(hobby.Tree{Version: hobby.TreeVersion + 1})
	require.NoError(t, err)

	_, err = OpenTree(env)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBytesAndParse(t *testing.T) {
	p := gamification.DefaultProfile("me", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	p.AddXP(120)

	env, err := SealProfile(p)
	require.NoError(t, err)

	parsed, err := Parse(env.Bytes())
	require.NoError(t, err)
	assert.Equal(t, env, parsed)

	back, err := OpenProfile(parsed)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Level)
	assert.Equal(t, 20, back.CurrentXP)
	assert.Equal(t, "Hobbyist", back.Name)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("no newline here"))
	assert.ErrorIs(t, err, ErrMalformedBlob)

	_, err = Parse([]byte("short\n{}"))
	assert.ErrorIs(t, err, ErrMalformedBlob)
}
