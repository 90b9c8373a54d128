package replay

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilebound/internal/domain/input"
)

func createTestReplayData() ReplayData {
	return ReplayData{
		Version:   Version,
		Level:     "demo",
		Framerate: 60,
		StartTime: "2024-01-01T00:00:00Z",
		Frames: []FrameInput{
			{F: 0},
			{F: 1, R: true},
			{F: 2, R: true, J: true, JP: true},
			{F: 3, A: true, AX: -0.5},
		},
	}
}

func TestFrameInput_SnapshotRoundTrip(t *testing.T) {
	s := input.Snapshot{Left: true, Jump: true, JumpPressed: true, AttackPressed: true, Axis: 0.75}

	fi := FromSnapshot(7, s)

	assert.Equal(t, FrameInput{F: 7, L: true, J: true, JP: true, A: true, AX: 0.75}, fi)
	assert.Equal(t, s, fi.Snapshot())
}

func TestFrameInput_OmitsIdleFields(t *testing.T) {
	data, err := json.Marshal(FrameInput{F: 3, R: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3,"r":true}`, string(data))
}

func TestReplayer_Playback(t *testing.T) {
	r := NewReplayer(createTestReplayData())

	assert.Equal(t, 4, r.TotalFrames())
	assert.Equal(t, "demo", r.Level())
	assert.False(t, r.Done())

	assert.Equal(t, input.Snapshot{}, r.Poll())
	assert.Equal(t, input.Snapshot{Right: true}, r.Poll())
	assert.Equal(t, input.Snapshot{Right: true, Jump: true, JumpPressed: true}, r.Poll())
	assert.Equal(t, 3, r.CurrentFrame())

	s, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, input.Snapshot{AttackPressed: true, Axis: -0.5}, s)
	assert.True(t, r.Done())

	_, ok = r.Next()
	assert.False(t, ok)
	assert.Equal(t, input.Snapshot{}, r.Poll(), "idle past the end")
	assert.Equal(t, 4, r.CurrentFrame())

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	assert.False(t, r.Done())
}

func TestReplayer_IsInputSource(t *testing.T) {
	var src input.Source = NewReplayer(createTestReplayData())
	src.Poll()
	assert.Equal(t, input.Snapshot{Right: true}, src.Poll())
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder("demo", 60)
	require.True(t, rec.IsRecording())

	rec.RecordFrame(input.Snapshot{})
	rec.RecordFrame(input.Snapshot{Right: true})
	rec.Stop()
	rec.RecordFrame(input.Snapshot{Left: true})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())

	data := rec.Data()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "demo", data.Level)
	assert.Equal(t, 60, data.Framerate)
	assert.NotEmpty(t, data.StartTime)
	assert.Equal(t, []FrameInput{{F: 0}, {F: 1, R: true}}, data.Frames)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder("annex", 60)
	snaps := []input.Snapshot{
		{Right: true},
		{Right: true, Jump: true, JumpPressed: true},
		{Jump: true},
		{AttackPressed: true},
	}
	for _, s := range snaps {
		rec.RecordFrame(s)
	}

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data(), *data)

	r := NewReplayer(*data)
	for _, want := range snaps {
		assert.Equal(t, want, r.Poll())
	}
	assert.True(t, r.Done())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("demo", 60)
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestRecorder_EncodeIndents(t *testing.T) {
	rec := NewRecorder("demo", 60)
	rec.RecordFrame(input.Snapshot{Left: true})

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))
	assert.Contains(t, buf.String(), "\n  \"level\": \"demo\"")
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadReplay(bad)
	assert.ErrorContains(t, err, "failed to decode replay")
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
