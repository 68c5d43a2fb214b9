package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHeader() *Header {
	return NewHeader(4096)
}

func TestHeaderValid(t *testing.T) {
	p := NewProto()
	tests := []struct {
		name   string
		header *Header
	}{
		{
			name:   "empty input",
			header: NewHeader(0),
		},
		{
			name:   "single short frame",
			header: NewHeader(7),
		},
		{
			name:   "maximum length",
			header: NewHeader(MaxLength),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SerializeHeader(tt.header)
			assert.NoError(t, err)
		})
	}
}

func TestHeaderInvalid(t *testing.T) {
	p := NewProto()
	tests := []struct {
		name    string
		mutate  func(h *Header)
		wantErr error
	}{
		{
			name:    "invalid magic",
			mutate:  func(h *Header) { copy(h.Magic[:], "GIF8") },
			wantErr: ErrInvalidMagic,
		},
		{
			name:    "invalid version",
			mutate:  func(h *Header) { h.Version = 0x99 },
			wantErr: ErrInvalidVersion,
		},
		{
			name:    "reserved field used",
			mutate:  func(h *Header) { h.Reserved = 1 },
			wantErr: ErrReservedFieldUsed,
		},
		{
			name:    "frame size",
			mutate:  func(h *Header) { h.FrameSize = 512 },
			wantErr: ErrInvalidFrameSize,
		},
		{
			name:    "length too large",
			mutate:  func(h *Header) { h.Length = MaxLength + 1 },
			wantErr: ErrPayloadTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeader()
			tt.mutate(h)

			_, err := p.SerializeHeader(h)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHeaderSerializeDeserialize(t *testing.T) {
	p := NewProto()

	tests := []struct {
		name   string
		header *Header
	}{
		{
			name:   "empty",
			header: NewHeader(0),
		},
		{
			name:   "one frame",
			header: NewHeader(FrameSize),
		},
		{
			name:   "video",
			header: NewHeader(6572 * FrameSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serialized, err := p.SerializeHeader(tt.header)
			require.NoError(t, err)
			assert.Len(t, serialized, HeaderSize)
			assert.Equal(t, []byte(Magic), serialized[:4])

			deserialized, err := p.DeserializeHeader(serialized)
			require.NoError(t, err)
			assert.Equal(t, tt.header, deserialized)
		})
	}
}

func TestHeaderWireLayout(t *testing.T) {
	serialized, err := NewProto().SerializeHeader(NewHeader(0x0102))
	require.NoError(t, err)

	expected := []byte{
		'M', 'R', 'L', 'E',
		0x01,
		0x00,
		0x04, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02,
	}
	assert.Equal(t, expected, serialized)
}

func TestHeaderDeserializeInvalidData(t *testing.T) {
	p := NewProto()

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty data",
			data: []byte{},
		},
		{
			name: "insufficient data",
			data: []byte("MRLE"),
		},
		{
			name: "partial header",
			data: []byte{'M', 'R', 'L', 'E', 0x01, 0x00, 0x04, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.DeserializeHeader(tt.data)
			assert.ErrorIs(t, err, ErrInvalidHeaderSize)
		})
	}
}

func TestPackUnpack(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{name: "empty", src: []byte{}},
		{name: "short frame", src: []byte{0x00, 0x00, 0xFF, 0x55, 0x12}},
		{name: "several frames", src: stripes(3*FrameSize + 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := Pack(tt.src)
			require.NoError(t, err)

			hd, body, err := SplitContainer(packed)
			require.NoError(t, err)
			assert.Equal(t, uint64(len(tt.src)), hd.Length)
			assert.Equal(t, Encode(tt.src), body)

			unpacked, err := Unpack(packed)
			require.NoError(t, err)
			assert.Equal(t, tt.src, unpacked)
		})
	}
}

func TestUnpackRejectsWrongLength(t *testing.T) {
	src := stripes(2 * FrameSize)
	packed, err := Pack(src)
	require.NoError(t, err)

	// Claim one byte more than the stream holds.
	hd, body, err := SplitContainer(packed)
	require.NoError(t, err)
	hd.Length++

	forged, err := NewProto().SerializeHeader(hd)
	require.NoError(t, err)

	_, err = Unpack(append(forged, body...))
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)

	// And one byte less.
	hd.Length -= 2
	forged, err = NewProto().SerializeHeader(hd)
	require.NoError(t, err)

	_, err = Unpack(append(forged, body...))
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)
}
