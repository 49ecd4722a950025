package tileraster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectTileFormat(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    TileFormat
		wantErr bool
	}{
		{
			name: "png",
			data: []byte("\x89\x50\x4E\x47\x0D\x0A\x1A\x0A rest of the tile"),
			want: PNG,
		},
		{
			name: "jpg",
			data: []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF"),
			want: JPG,
		},
		{
			name: "webp",
			data: []byte("\x52\x49\x46\x46\x24\x03\x00\x00\x57\x45\x42\x50VP8 "),
			want: WEBP,
		},
		{
			name:    "riff without webp chunk",
			data:    []byte("\x52\x49\x46\x46\x24\x03\x00\x00WAVEfmt "),
			want:    UNKNOWN,
			wantErr: true,
		},
		{
			name:    "garbage",
			data:    []byte("tile"),
			want:    UNKNOWN,
			wantErr: true,
		},
		{
			name:    "empty",
			data:    nil,
			want:    UNKNOWN,
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := detectTileFormat(tc.data)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseTileFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    TileFormat
		wantErr bool
	}{
		{in: "png", want: PNG},
		{in: "PNG", want: PNG},
		{in: "jpg", want: JPG},
		{in: "jpeg", want: JPG},
		{in: "pbf", want: PBF},
		{in: "mvt", want: PBF},
		{in: "webp", want: WEBP},
		{in: "tif", want: UNKNOWN, wantErr: true},
		{in: "", want: UNKNOWN, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTileFormat(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTileFormatContentType(t *testing.T) {
	require.Equal(t, "image/png", PNG.ContentType())
	require.Equal(t, "image/jpeg", JPG.ContentType())
	require.Equal(t, "application/x-protobuf", PBF.ContentType())
	require.Equal(t, "image/webp", WEBP.ContentType())
	require.Equal(t, "", UNKNOWN.ContentType())

	require.Equal(t, "png", PNG.String())
	require.Equal(t, "", UNKNOWN.String())
}
