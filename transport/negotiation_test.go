package transport_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/aptpod/viewmeasure-go/transport"
	"github.com/aptpod/viewmeasure-go/transport/compress"
)

func TestNegotiationParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  NegotiationParams
		wantErr bool
	}{
		{
			name:   "default values",
			params: NegotiationParams{},
		},
		{
			name: "filled fields",
			params: NegotiationParams{
				Encoding:    EncodingNameProtobuf,
				ReadTimeout: pointer.ToInt(30),
			},
		},
		{
			name: "invalid encoding",
			params: NegotiationParams{
				Encoding: EncodingName("unknown"),
			},
			wantErr: true,
		},
		{
			name: "compress level",
			params: NegotiationParams{
				CompressLevel: pointer.ToInt(9),
			},
		},
		{
			name: "invalid compress level",
			params: NegotiationParams{
				CompressLevel: pointer.ToInt(10),
			},
			wantErr: true,
		},
		{
			name: "negative read timeout",
			params: NegotiationParams{
				ReadTimeout: pointer.ToInt(-1),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNegotiationParams_URLValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params NegotiationParams
		want   url.Values
	}{
		{
			name:   "empty",
			params: NegotiationParams{},
			want:   url.Values{},
		},
		{
			name: "filled",
			params: NegotiationParams{
				Encoding:      EncodingNameJSON,
				ReadTimeout:   pointer.ToInt(5),
				CompressLevel: pointer.ToInt(6),
			},
			want: url.Values{
				"enc":      []string{"json"},
				"rtimeout": []string{"5"},
				"clevel":   []string{"6"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.MarshalURLValues()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var back NegotiationParams
			require.NoError(t, back.UnmarshalURLValues(got))
			assert.Equal(t, tt.params, back)
		})
	}
}

func TestNegotiationParams_UnmarshalURLValues_invalid(t *testing.T) {
	var p NegotiationParams
	assert.Error(t, p.UnmarshalURLValues(url.Values{"enc": []string{"xml"}}))
	assert.Error(t, p.UnmarshalURLValues(url.Values{"rtimeout": []string{"abc"}}))
}

func TestNegotiationParams_ReadTimeoutDuration(t *testing.T) {
	p := NegotiationParams{}
	assert.Equal(t, time.Duration(0), p.ReadTimeoutDuration())
	p.ReadTimeout = pointer.ToInt(2)
	assert.Equal(t, 2*time.Second, p.ReadTimeoutDuration())
}

func TestNegotiationParams_CompressConfig(t *testing.T) {
	p := NegotiationParams{}
	assert.Equal(t, compress.Config{}, p.CompressConfig())
	p.CompressLevel = pointer.ToInt(3)
	assert.Equal(t, compress.Config{Enable: true, Level: 3}, p.CompressConfig())
}

func TestDialConfig_NegotiationParams_Compress(t *testing.T) {
	c := DialConfig{CompressConfig: compress.Config{Enable: true}}
	assert.Equal(t, NegotiationParams{CompressLevel: pointer.ToInt(compress.DefaultLevel)}, c.NegotiationParams())
}

func TestDialConfig_NegotiationParams(t *testing.T) {
	c := DialConfig{
		Address:      "127.0.0.1:8080",
		EncodingName: EncodingNameProtobuf,
		ReadTimeout:  pointer.ToInt(10),
	}
	assert.Equal(t, NegotiationParams{
		Encoding:    EncodingNameProtobuf,
		ReadTimeout: pointer.ToInt(10),
	}, c.NegotiationParams())
}
