package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	Magic      = "MRLE"
	Version    = uint8(0x01)
	HeaderSize = 16

	MaxLength uint64 = 32 * 1024 * 1024 * 1024 // 32 GB

	VERSION = "1.0"
)

var (
	ErrInvalidMagic      = errors.New("invalid magic")
	ErrInvalidVersion    = errors.New("invalid version")
	ErrInvalidFrameSize  = errors.New("invalid frame size")
	ErrReservedFieldUsed = errors.New("reserved field must be zero")
	ErrInvalidHeaderSize = errors.New("header data too small")
	ErrPayloadTooLarge   = errors.New("length exceeds maximum size")
)

// Header is the container header (16 bytes, big-endian)
type Header struct {
	Magic     [4]byte // "MRLE"
	Version   uint8
	Reserved  uint8
	FrameSize uint16
	Length    uint64 // original byte count
}

// Proto handles container header serialization and deserialization
type Proto struct{}

func NewProto() *Proto {
	return &Proto{}
}

func NewHeader(length uint64) *Header {
	h := &Header{
		Version:   Version,
		FrameSize: FrameSize,
		Length:    length,
	}
	copy(h.Magic[:], Magic)

	return h
}

// SerializeHeader serializes a header to bytes
func (p *Proto) SerializeHeader(header *Header) ([]byte, error) {
	if err := p.validateHeader(header); err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))

	if _, err := buf.Write(header.Magic[:]); err != nil {
		return nil, fmt.Errorf("failed to write magic: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, header.Version); err != nil {
		return nil, fmt.Errorf("failed to write version: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, header.Reserved); err != nil {
		return nil, fmt.Errorf("failed to write reserved: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, header.FrameSize); err != nil {
		return nil, fmt.Errorf("failed to write frame size: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, header.Length); err != nil {
		return nil, fmt.Errorf("failed to write length: %w", err)
	}

	return buf.Bytes(), nil
}

// DeserializeHeader deserializes the first HeaderSize bytes of data
func (p *Proto) DeserializeHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	reader := bytes.NewReader(data[:HeaderSize])
	var header Header

	if err := binary.Read(reader, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := p.validateHeader(&header); err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	return &header, nil
}

func (p *Proto) validateHeader(header *Header) error {
	if string(header.Magic[:]) != Magic {
		return ErrInvalidMagic
	}

	if header.Version != Version {
		return ErrInvalidVersion
	}

	if header.Reserved != 0 {
		return ErrReservedFieldUsed
	}

	if header.FrameSize != FrameSize {
		return ErrInvalidFrameSize
	}

	if header.Length > MaxLength {
		return ErrPayloadTooLarge
	}

	return nil
}

// Pack returns the container for src: header followed by the token stream.
func Pack(src []byte) ([]byte, error) {
	return packStream(Encode(src), len(src))
}

func packStream(stream []byte, length int) ([]byte, error) {
	hd, err := NewProto().SerializeHeader(NewHeader(uint64(length)))
	if err != nil {
		return nil, err
	}

	return append(hd, stream...), nil
}

// Unpack validates the container header and decodes the stream that follows.
func Unpack(data []byte) ([]byte, error) {
	hd, body, err := SplitContainer(data)
	if err != nil {
		return nil, err
	}

	return NewDecoder(bytes.NewReader(body), int64(hd.Length)).DecodeAll()
}

// SplitContainer returns the header and the bare stream of a container.
func SplitContainer(data []byte) (*Header, []byte, error) {
	hd, err := NewProto().DeserializeHeader(data)
	if err != nil {
		return nil, nil, err
	}

	return hd, data[HeaderSize:], nil
}
