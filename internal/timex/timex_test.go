package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"3s"`, want: 3 * time.Second},
		{name: "nanoseconds", in: `1500000000`, want: 1500 * time.Millisecond},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestMillis_JSONRoundTrip(t *testing.T) {
	src := NewMillis(time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC))

	b, err := json.Marshal(src)
	require.NoError(t, err)
	assert.Equal(t, "1709288430123", string(b))

	var got Millis
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, src.Equal(got.Time))
}

func TestMillis_ZeroAndNull(t *testing.T) {
	b, err := json.Marshal(Millis{})
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))

	var m Millis
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.True(t, m.IsZero())

	require.NoError(t, json.Unmarshal([]byte("0"), &m))
	assert.True(t, m.IsZero())
}

func TestMillis_Before(t *testing.T) {
	a := NewMillis(time.UnixMilli(1000))
	b := NewMillis(time.UnixMilli(2000))
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var v struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 250ms\nb: 2000000000\n"), &v))
	assert.Equal(t, 250*time.Millisecond, v.A.Duration)
	assert.Equal(t, 2*time.Second, v.B.Duration)

	require.ErrorIs(t, yaml.Unmarshal([]byte("a: soon\n"), &v), ErrInvalidDuration)
	require.ErrorIs(t, yaml.Unmarshal([]byte("a: [1]\n"), &v), ErrInvalidDuration)
}
