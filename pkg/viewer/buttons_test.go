package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultButtonMapping(t *testing.T) {
	m := DefaultButtonMapping()
	require.NoError(t, m.Validate())
	assert.Equal(t, ActionRotate, m.ActionFor(ButtonPrimary))
	assert.Equal(t, ActionPan, m.ActionFor(ButtonSecondary))
	assert.Equal(t, ActionDolly, m.ActionFor(ButtonAuxiliary))
	assert.Equal(t, ActionNone, m.ActionFor(Button(7)))
}

func TestButtonMappingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mapping ButtonMapping
		valid   bool
	}{
		{"pan on primary", ButtonMapping{ActionPan, ActionRotate, ActionDolly}, true},
		{"dolly on secondary", ButtonMapping{ActionRotate, ActionDolly, ActionPan}, true},
		{"rotate twice", ButtonMapping{ActionRotate, ActionRotate, ActionDolly}, false},
		{"missing pan", ButtonMapping{ActionRotate, ActionNone, ActionDolly}, false},
		{"nothing bound", ButtonMapping{}, false},
		{"out of range", ButtonMapping{ActionRotate, ActionPan, Action(9)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mapping.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidButtonMapping)
			}
		})
	}
}

func TestActionText(t *testing.T) {
	var a Action
	require.NoError(t, a.UnmarshalText([]byte("Pan")))
	assert.Equal(t, ActionPan, a)

	require.NoError(t, a.UnmarshalText([]byte("zoom")))
	assert.Equal(t, ActionDolly, a)

	assert.Error(t, a.UnmarshalText([]byte("spin")))
	assert.Equal(t, ActionDolly, a)

	text, err := ActionRotate.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rotate", string(text))

	_, err = Action(-1).MarshalText()
	assert.Error(t, err)
}
