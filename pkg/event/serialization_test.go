package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Run("wire form", func(t *testing.T) {
		data, err := Marshal(NewIdea(Idea{Name: "Robot for Bakers", PackagesRequired: 4}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"new_idea","idea":{"name":"Robot for Bakers","packages_required":4}}`, string(data))

		data, err = Marshal(WorkDone())
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"work_done"}`, string(data))
	})

	t.Run("rejects invalid events", func(t *testing.T) {
		_, err := Marshal(Event{Kind: KindPackageReady})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("decodes package", func(t *testing.T) {
		ev, err := Unmarshal([]byte(`{"kind":"package_ready","package":{"name":"tokio"}}`))
		require.NoError(t, err)
		assert.Equal(t, PackageReady(Package{Name: "tokio"}), ev)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal event")
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"kind":"new_idea"}`))
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}
